package styler_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/host"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/styler"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

type typeface string

func (tf typeface) Name() string { return string(tf) }

type provider struct{}

func (provider) CreateTypeface(family string, flag font.StyleFlag) (font.Typeface, error) {
	if family == "Missing" {
		return nil, errors.New("not installed")
	}
	return typeface(family + "-" + flag.String()), nil
}

func (provider) CreateTypefaceFromBytes([]byte) (font.Typeface, error) {
	return nil, errors.New("not supported")
}

var tint = css.Color{R: 10, G: 20, B: 30, A: 255}

func adapter() *styler.Adapter {
	frames := keyframes.NewRegistry()
	frames.Add(keyframes.NewKeyframe("pulse").
		AddBlock(keyframes.NewBlock(0).Add("opacity", "0")).
		AddBlock(keyframes.NewBlock(1).Add("opacity", "1")))
	fonts := font.NewCache(provider{}, nil)
	return styler.NewAdapter(host.Family, styler.Standard(css.DefaultMetrics,
		shadow.Defaults{Tint: &tint}, fonts, "", frames)...)
}

func context(target style.Target, parent *style.Context) *style.Context {
	return style.NewContext(target, parent)
}

func rules(kv ...string) *style.RuleSet {
	rs := style.NewRuleSet(style.InlineSelector(), 0)
	for i := 0; i+1 < len(kv); i += 2 {
		rs.Add(kv[i], style.Property(kv[i+1]), false)
	}
	return rs
}

func TestUpdateStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styler")
	defer teardown()
	//
	v := host.NewView("button#ok.primary")
	rs := rules(
		"transform", "translate(10px, 5px)",
		"box-shadow", "2px 2px 4px",
		"font-family", `"Fira Sans", serif`,
		"font-weight", "bold",
		"font-size", "2em",
		"color", "#ff0000",
		"background-color", "white",
		"opacity", "50%",
		"padding", "4px 8px",
		"animation-name", "pulse",
		"animation-duration", "250ms",
		"animation-iteration-count", "infinite",
	)
	err := adapter().UpdateStyle([]*style.RuleSet{rs}, []*style.Context{context(style.Host(v), nil)})
	require.NoError(t, err)
	x, y := v.Transform.Apply(0, 0)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 5.0, y, 1e-9)
	require.NotNil(t, v.Shadow)
	assert.Equal(t, tint, v.Shadow.(*shadow.Shadow).Tint())
	assert.Equal(t, "Fira Sans-bold", v.Face.Typeface.Name())
	assert.Equal(t, 32.0, v.Face.Size)
	assert.Equal(t, css.Color{R: 255, A: 255}, v.Color)
	assert.Equal(t, css.Color{R: 255, G: 255, B: 255, A: 255}, v.Background)
	assert.Equal(t, 0.5, v.Opacity)
	assert.Equal(t, styler.Insets{Top: 3 * dimen.BP, Right: 6 * dimen.BP, Bottom: 3 * dimen.BP, Left: 6 * dimen.BP}, v.Padding)
	require.NotNil(t, v.Animation)
	assert.Equal(t, "pulse", v.Animation.Keyframes.Name())
	assert.Equal(t, 250*time.Millisecond, v.Animation.Duration)
	assert.True(t, v.Animation.Infinite())
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styler")
	defer teardown()
	//
	v := host.NewView("div")
	a := adapter()
	rs := rules("transform", "rotate(90deg) scale(2)", "color", "blue", "opacity", "0.25")
	require.NoError(t, a.UpdateStyle([]*style.RuleSet{rs}, []*style.Context{context(style.Host(v), nil)}))
	once := v.Visual()
	require.NoError(t, a.UpdateStyle([]*style.RuleSet{rs}, []*style.Context{context(style.Host(v), nil)}))
	assert.Equal(t, once, v.Visual())
}

func TestBatchMismatch(t *testing.T) {
	v := host.NewView("div")
	err := adapter().UpdateStyle([]*style.RuleSet{rules("color", "red")}, nil)
	assert.ErrorIs(t, err, styler.ErrBatchMismatch)
	assert.Equal(t, 0, v.Updates)
}

func TestErrorsAreCollected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styler")
	defer teardown()
	//
	v1, v2 := host.NewView("p"), host.NewView("p")
	bad := rules("animation-name", "unknown", "font-family", "Missing", "color", "green")
	good := rules("color", "red")
	err := adapter().UpdateStyle(
		[]*style.RuleSet{bad, good},
		[]*style.Context{context(style.Host(v1), nil), context(style.Host(v2), nil)},
	)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	var ae *styler.ApplyError
	require.True(t, errors.As(errs[0], &ae))
	assert.Equal(t, "font", ae.Styler)
	require.True(t, errors.As(errs[1], &ae))
	assert.Equal(t, "animation", ae.Styler)
	assert.Equal(t, v1.StyleKey(), ae.Target.String())
	//
	assert.Equal(t, css.Color{G: 128, A: 255}, v1.Color, "remaining stylers run")
	assert.Equal(t, css.Color{R: 255, A: 255}, v2.Color, "remaining positions run")
}

type panicky struct{}

func (panicky) Name() string                            { return "panicky" }
func (panicky) Properties() []string                    { return []string{"color"} }
func (panicky) Apply(style.Target, styler.Values) error { panic("boom") }

func TestPanicIsRecovered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styler")
	defer teardown()
	//
	v := host.NewView("div")
	a := styler.NewAdapter("test", panicky{}, styler.OpacityStyler{})
	err := a.UpdateStyle([]*style.RuleSet{rules("color", "red", "opacity", "0")},
		[]*style.Context{context(style.Host(v), nil)})
	var ae *styler.ApplyError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "panicky", ae.Styler)
	assert.Equal(t, 0.0, v.Opacity)
}

type plain struct{}

func (plain) HTMLNode() *html.Node { return &html.Node{Type: html.ElementNode, Data: "x"} }
func (plain) StyleKey() string     { return "plain" }

func TestMissingCapabilityIsSkipped(t *testing.T) {
	err := adapter().UpdateStyle([]*style.RuleSet{rules("color", "red", "opacity", "1")},
		[]*style.Context{context(style.Host(plain{}), nil)})
	assert.NoError(t, err)
}

func TestSyntheticParts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styler")
	defer teardown()
	//
	v := host.NewView("button")
	icon := v.AddPart("icon")
	a := adapter()
	err := a.UpdateStyle([]*style.RuleSet{rules("color", "red")},
		[]*style.Context{context(style.Synthetic(v, "icon"), nil)})
	require.NoError(t, err)
	assert.Equal(t, css.Color{R: 255, A: 255}, icon.Color)
	assert.Equal(t, css.Color{}, v.Color, "host is untouched")
	//
	err = a.UpdateStyle([]*style.RuleSet{rules("color", "red")},
		[]*style.Context{context(style.Synthetic(v, "badge"), nil)})
	assert.ErrorIs(t, err, styler.ErrNoPart)
}

func TestInheritedValues(t *testing.T) {
	parent := host.NewView("div")
	child := host.NewView("span")
	parent.Add(child)
	a := adapter()
	pctx := context(style.Host(parent), nil)
	cctx := context(style.Host(child), pctx)
	err := a.UpdateStyle([]*style.RuleSet{rules("color", "navy", "opacity", "0.5"), nil},
		[]*style.Context{pctx, cctx})
	require.NoError(t, err)
	assert.Equal(t, css.Color{B: 128, A: 255}, child.Color, "color is inherited")
	assert.Equal(t, 1.0, child.Opacity, "opacity is not inherited")
}

func TestValues(t *testing.T) {
	v := styler.Values{}
	d, ok := v.Lookup("opacity")
	require.True(t, ok, "initial values are supplied")
	assert.Equal(t, css.Num(1), d.Value)
	assert.False(t, v.Has("opacity"))
	_, ok = v.Lookup("-x-unknown")
	assert.False(t, ok)
	k, ok := v.Keyword("animation-name")
	require.True(t, ok)
	assert.Equal(t, "none", k)
	_, ok = v.Color("opacity")
	assert.False(t, ok)
	//
	a := &styler.Animation{Iterations: math.Inf(1)}
	assert.True(t, a.Infinite())
	var none *styler.Animation
	assert.Equal(t, "none", none.String())
}
