/*
Package host is a reference family of host objects for the style engine.

A View is an in-memory host object which records the visual state stylers
set on it. Views form a tree and may carry synthetic parts, e.g. the icon
of a button, which are styled separately from their view. Views implement
every styling capability of package styler, and so does every part.

Views are used by the engine's tests and may serve as a starting point for
adapting real widget toolkits.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package host

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/styler"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Family is the adapter family of views.
const Family = "view"

// State is the visual state of a view or part.
type State struct {
	Transforms css.TransformList
	Transform  css.Affine
	Shadow     shadow.Paint
	Face       font.Face
	Color      css.Color
	Background css.Color
	Opacity    float64
	Padding    styler.Insets
	Animation  *styler.Animation
	Updates    int // number of setter calls
}

func initialState() State {
	return State{Transform: css.Identity(), Opacity: 1}
}

func (s *State) SetTransform(list css.TransformList, m css.Affine) {
	s.Transforms, s.Transform = list, m
	s.Updates++
}

func (s *State) SetShadow(p shadow.Paint) {
	s.Shadow = p
	s.Updates++
}

func (s *State) SetFont(face font.Face) {
	s.Face = face
	s.Updates++
}

func (s *State) SetColor(c css.Color) {
	s.Color = c
	s.Updates++
}

func (s *State) SetBackgroundColor(c css.Color) {
	s.Background = c
	s.Updates++
}

func (s *State) SetOpacity(alpha float64) {
	s.Opacity = alpha
	s.Updates++
}

func (s *State) SetPadding(insets styler.Insets) {
	s.Padding = insets
	s.Updates++
}

func (s *State) SetAnimation(a *styler.Animation) {
	s.Animation = a
	s.Updates++
}

// Visual returns the state without the update counter, for comparisons.
func (s *State) Visual() State {
	v := *s
	v.Updates = 0
	return v
}

// --- View ------------------------------------------------------------------

// View is a host object. Its identity for selector matching is an HTML
// element with the view's tag, id and classes.
type View struct {
	State
	node     *html.Node
	parent   *View
	children []*View
	parts    map[string]*Part
	metrics  *css.Metrics
}

// NewView creates a view. selector is a simple selector of the form
// tag#id.class1.class2, where id and classes are optional.
func NewView(selector string) *View {
	tag, id, classes := splitSimple(selector)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	return &View{State: initialState(), node: n}
}

func splitSimple(selector string) (tag, id string, classes []string) {
	parts := strings.Split(selector, ".")
	tag, classes = parts[0], parts[1:]
	if i := strings.IndexByte(tag, '#'); i >= 0 {
		tag, id = tag[:i], tag[i+1:]
	}
	if tag == "" {
		tag = "div"
	}
	return
}

// Add appends child views to v.
func (v *View) Add(children ...*View) *View {
	for _, ch := range children {
		if ch.parent != nil {
			ch.parent.remove(ch)
		}
		ch.parent = v
		v.children = append(v.children, ch)
		v.node.AppendChild(ch.node)
	}
	return v
}

func (v *View) remove(ch *View) {
	for i, c := range v.children {
		if c == ch {
			v.children = append(v.children[:i], v.children[i+1:]...)
			v.node.RemoveChild(ch.node)
			ch.parent = nil
			return
		}
	}
}

// Parent returns the parent view, or nil.
func (v *View) Parent() *View {
	return v.parent
}

// Children returns the child views of v.
func (v *View) Children() []*View {
	ch := make([]*View, len(v.children))
	copy(ch, v.children)
	return ch
}

// SetMetrics sets the metrics relative lengths of v are resolved with.
func (v *View) SetMetrics(m css.Metrics) {
	v.metrics = &m
}

// StyleMetrics is part of interface styler.Measured.
func (v *View) StyleMetrics() css.Metrics {
	if v.metrics != nil {
		return *v.metrics
	}
	for p := v.parent; p != nil; p = p.parent {
		if p.metrics != nil {
			return *p.metrics
		}
	}
	return css.DefaultMetrics
}

// HTMLNode is part of interface style.Element.
func (v *View) HTMLNode() *html.Node {
	return v.node
}

// StyleKey is part of interface style.Styleable.
func (v *View) StyleKey() string {
	var b strings.Builder
	b.WriteString(v.node.Data)
	for _, a := range v.node.Attr {
		switch a.Key {
		case "id":
			b.WriteString("#" + a.Val)
		case "class":
			b.WriteString("." + strings.ReplaceAll(a.Val, " ", "."))
		}
	}
	return b.String()
}

// StyleFamily is part of interface style.StyleFamily.
func (v *View) StyleFamily() string {
	return Family
}

// AddPart creates a synthetic part of v, or returns the existing one.
func (v *View) AddPart(tag string) *Part {
	if v.parts == nil {
		v.parts = make(map[string]*Part)
	}
	if p, ok := v.parts[tag]; ok {
		return p
	}
	p := &Part{State: initialState(), tag: tag, view: v}
	v.parts[tag] = p
	return p
}

// Part returns the part of v with the given tag, or nil.
func (v *View) Part(tag string) *Part {
	return v.parts[tag]
}

// StylePart is part of interface style.PartProvider.
func (v *View) StylePart(tag string) any {
	if p, ok := v.parts[tag]; ok {
		return p
	}
	return nil
}

// Targets returns the style targets of v: the view itself, followed by its
// parts in order of their tags.
func (v *View) Targets() []style.Target {
	targets := []style.Target{style.Host(v)}
	tags := make([]string, 0, len(v.parts))
	for tag := range v.parts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		targets = append(targets, style.Synthetic(v, tag))
	}
	return targets
}

// Walk calls fn for v and all of its descendents, parents before children.
func (v *View) Walk(fn func(*View)) {
	fn(v)
	for _, ch := range v.children {
		ch.Walk(fn)
	}
}

func (v *View) String() string {
	return fmt.Sprintf("view<%s>", v.StyleKey())
}

var _ style.Styleable = &View{}
var _ style.PartProvider = &View{}

// --- Parts -----------------------------------------------------------------

// Part is a synthetic part of a view.
type Part struct {
	State
	tag  string
	view *View
}

// Tag returns the tag of p.
func (p *Part) Tag() string {
	return p.tag
}

// View returns the view p belongs to.
func (p *Part) View() *View {
	return p.view
}

// StyleMetrics is part of interface styler.Measured.
func (p *Part) StyleMetrics() css.Metrics {
	return p.view.StyleMetrics()
}

var (
	_ styler.Transformable    = &State{}
	_ styler.ShadowTarget     = &State{}
	_ styler.FontTarget       = &State{}
	_ styler.ColorTarget      = &State{}
	_ styler.BackgroundTarget = &State{}
	_ styler.OpacityTarget    = &State{}
	_ styler.PaddingTarget    = &State{}
	_ styler.Animatable       = &State{}
)
