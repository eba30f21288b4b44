package styler

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/tyse/core/dimen"
)

// Standard returns the stylers for all supported domains, in their
// canonical order.
func Standard(metrics css.Metrics, defaults shadow.Defaults, fonts *font.Cache,
	family string, frames *keyframes.Registry) []Styler {
	//
	return []Styler{
		TransformStyler{Metrics: metrics},
		ShadowStyler{Defaults: defaults},
		FontStyler{Cache: fonts, Family: family, Metrics: metrics},
		ColorStyler{},
		BackgroundStyler{},
		OpacityStyler{},
		PaddingStyler{Metrics: metrics},
		AnimationStyler{Registry: frames},
	}
}

func unexpected(d style.Declaration) error {
	return fmt.Errorf("unexpected value for %s: %s", d.Name, d.Raw)
}

// --- Transform -------------------------------------------------------------

// TransformStyler handles property 'transform'.
type TransformStyler struct {
	Metrics css.Metrics
}

func (TransformStyler) Name() string         { return "transform" }
func (TransformStyler) Properties() []string { return []string{"transform"} }

func (s TransformStyler) Apply(target style.Target, values Values) error {
	recv := target.Receiver()
	t, ok := recv.(Transformable)
	if !ok {
		return nil
	}
	d, _ := values.Lookup("transform")
	list, ok := d.Value.(css.TransformList)
	if !ok {
		return unexpected(d)
	}
	t.SetTransform(list, list.Affine(metricsOf(recv, s.Metrics)))
	return nil
}

// --- Shadow ----------------------------------------------------------------

// ShadowStyler handles properties 'box-shadow' and 'shadow'. If both are
// set, 'box-shadow' wins.
type ShadowStyler struct {
	Defaults shadow.Defaults
}

func (ShadowStyler) Name() string         { return "shadow" }
func (ShadowStyler) Properties() []string { return []string{"box-shadow", "shadow"} }

func (s ShadowStyler) Apply(target style.Target, values Values) error {
	t, ok := target.Receiver().(ShadowTarget)
	if !ok {
		return nil
	}
	name := "box-shadow"
	if !values.Has(name) {
		name = "shadow"
	}
	d, _ := values.Lookup(name)
	p, ok := d.Value.(shadow.Paint)
	if !ok {
		return unexpected(d)
	}
	if g, ok := p.(*shadow.Group); ok && g.Len() == 0 {
		t.SetShadow(nil)
		return nil
	}
	t.SetShadow(shadow.Resolve(p, s.Defaults))
	return nil
}

// --- Font ------------------------------------------------------------------

// FontStyler handles properties 'font-family', 'font-size', 'font-weight' and
// 'font-style'. Typefaces are taken from a font cache. Of a list of families
// the first one which loads is used.
type FontStyler struct {
	Cache   *font.Cache
	Family  string // used if no family is set
	Metrics css.Metrics
}

func (FontStyler) Name() string { return "font" }

func (FontStyler) Properties() []string {
	return []string{"font-family", "font-size", "font-weight", "font-style"}
}

var fontSizes = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

func (s FontStyler) Apply(target style.Target, values Values) error {
	recv := target.Receiver()
	t, ok := recv.(FontTarget)
	if !ok {
		return nil
	}
	if s.Cache == nil {
		return errors.New("no font cache")
	}
	m := metricsOf(recv, s.Metrics)
	size, err := s.size(values, m)
	if err != nil {
		return err
	}
	weight, slant := "normal", "normal"
	if d, ok := values.Lookup("font-weight"); ok {
		weight = d.Value.String()
	}
	if d, ok := values.Lookup("font-style"); ok {
		slant = d.Value.String()
	}
	families := []string{s.Family}
	if k, ok := values.Keyword("font-family"); ok {
		families = append(splitFamilies(k), s.Family)
	}
	var last error
	for _, family := range families {
		if family == "" {
			continue
		}
		tf, err := s.Cache.Typeface(family, weight, slant)
		if err != nil {
			last = err
			continue
		}
		t.SetFont(font.Face{Typeface: tf, Size: size})
		return nil
	}
	if last == nil {
		last = errors.New("no font family")
	}
	return last
}

func (s FontStyler) size(values Values, m css.Metrics) (float64, error) {
	d, ok := values.Lookup("font-size")
	if !ok {
		return m.EmSize, nil
	}
	switch v := d.Value.(type) {
	case css.Keyword:
		if px, ok := fontSizes[strings.ToLower(string(v))]; ok {
			return px, nil
		}
	case css.Dimension:
		if v.Unit == css.Percent {
			f, _ := v.Fraction()
			return f * m.EmSize, nil
		}
		if px, ok := v.Pixels(m); ok && px >= 0 {
			return px, nil
		}
	}
	return 0, unexpected(d)
}

func splitFamilies(list string) []string {
	var families []string
	for _, f := range strings.Split(list, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			families = append(families, f)
		}
	}
	return families
}

// --- Colors ----------------------------------------------------------------

// ColorStyler handles property 'color'.
type ColorStyler struct{}

func (ColorStyler) Name() string         { return "color" }
func (ColorStyler) Properties() []string { return []string{"color"} }

func (ColorStyler) Apply(target style.Target, values Values) error {
	t, ok := target.Receiver().(ColorTarget)
	if !ok {
		return nil
	}
	c, ok := values.Color("color")
	if !ok {
		d, _ := values.Lookup("color")
		return unexpected(d)
	}
	t.SetColor(c)
	return nil
}

// BackgroundStyler handles property 'background-color'.
type BackgroundStyler struct{}

func (BackgroundStyler) Name() string         { return "background" }
func (BackgroundStyler) Properties() []string { return []string{"background-color"} }

func (BackgroundStyler) Apply(target style.Target, values Values) error {
	t, ok := target.Receiver().(BackgroundTarget)
	if !ok {
		return nil
	}
	c, ok := values.Color("background-color")
	if !ok {
		d, _ := values.Lookup("background-color")
		return unexpected(d)
	}
	t.SetBackgroundColor(c)
	return nil
}

// --- Opacity ---------------------------------------------------------------

// OpacityStyler handles property 'opacity'. Values are clamped to [0,1].
type OpacityStyler struct{}

func (OpacityStyler) Name() string         { return "opacity" }
func (OpacityStyler) Properties() []string { return []string{"opacity"} }

func (OpacityStyler) Apply(target style.Target, values Values) error {
	t, ok := target.Receiver().(OpacityTarget)
	if !ok {
		return nil
	}
	d, _ := values.Lookup("opacity")
	dim, ok := d.Value.(css.Dimension)
	if !ok {
		return unexpected(d)
	}
	alpha, ok := dim.Fraction()
	if !ok {
		return unexpected(d)
	}
	t.SetOpacity(math.Max(0, math.Min(1, alpha)))
	return nil
}

// --- Padding ---------------------------------------------------------------

// PaddingStyler handles properties 'padding-top', 'padding-right',
// 'padding-bottom' and 'padding-left'. Shorthand 'padding' is expanded
// into these when rule sets are built.
type PaddingStyler struct {
	Metrics css.Metrics
}

func (PaddingStyler) Name() string { return "padding" }

func (PaddingStyler) Properties() []string {
	return []string{"padding-top", "padding-right", "padding-bottom", "padding-left"}
}

func (s PaddingStyler) Apply(target style.Target, values Values) error {
	recv := target.Receiver()
	t, ok := recv.(PaddingTarget)
	if !ok {
		return nil
	}
	m := metricsOf(recv, s.Metrics)
	var insets Insets
	sides := []struct {
		name string
		du   *dimen.DU
	}{
		{"padding-top", &insets.Top},
		{"padding-right", &insets.Right},
		{"padding-bottom", &insets.Bottom},
		{"padding-left", &insets.Left},
	}
	for _, side := range sides {
		d, _ := values.Lookup(side.name)
		dim, ok := d.Value.(css.Dimension)
		if !ok {
			return unexpected(d)
		}
		du, ok := dim.DU(m)
		if !ok {
			return unexpected(d)
		}
		*side.du = du
	}
	t.SetPadding(insets)
	return nil
}

// --- Animation -------------------------------------------------------------

// AnimationStyler handles the 'animation-*' properties. Animation names are
// looked up in a keyframes registry; an unknown name is an error.
type AnimationStyler struct {
	Registry *keyframes.Registry
}

func (AnimationStyler) Name() string { return "animation" }

func (AnimationStyler) Properties() []string {
	return []string{
		"animation-name",
		"animation-duration",
		"animation-delay",
		"animation-iteration-count",
		"animation-timing-function",
	}
}

func (s AnimationStyler) Apply(target style.Target, values Values) error {
	t, ok := target.Receiver().(Animatable)
	if !ok {
		return nil
	}
	name, ok := values.Keyword("animation-name")
	if !ok {
		d, _ := values.Lookup("animation-name")
		return unexpected(d)
	}
	if name == "none" {
		t.SetAnimation(nil)
		return nil
	}
	if s.Registry == nil {
		return fmt.Errorf("no keyframes registry for animation %s", name)
	}
	k, ok := s.Registry.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown animation %q", name)
	}
	a := &Animation{Keyframes: k, Iterations: 1, Timing: "ease"}
	for _, prop := range []string{"animation-duration", "animation-delay"} {
		d, _ := values.Lookup(prop)
		dim, ok := d.Value.(css.Dimension)
		if !ok {
			return unexpected(d)
		}
		dur, ok := dim.Duration()
		if !ok || dur < 0 {
			return unexpected(d)
		}
		if prop == "animation-duration" {
			a.Duration = dur
		} else {
			a.Delay = dur
		}
	}
	d, _ := values.Lookup("animation-iteration-count")
	switch v := d.Value.(type) {
	case css.Keyword:
		if !strings.EqualFold(string(v), "infinite") {
			return unexpected(d)
		}
		a.Iterations = math.Inf(1)
	case css.Dimension:
		if v.Unit != css.Number || v.Value < 0 {
			return unexpected(d)
		}
		a.Iterations = v.Value
	default:
		return unexpected(d)
	}
	if timing, ok := values.Keyword("animation-timing-function"); ok {
		a.Timing = timing
	}
	t.SetAnimation(a)
	return nil
}
