/*
Package shadow composes shadow paint effects.

A shadow paint is either a single Shadow or a Group of paints, which may in
turn contain groups. Painting is split into two passes: the outset pass
paints shadows cast outside of a path, the inset pass paints shadows inside
of it. Every Shadow decides for itself which of the passes it contributes
to, so a group simply forwards both passes to all of its members, in the
order they were added.

Shadows do not draw anything themselves. They describe a paint operation
(Op) and hand it to a Surface, which is supplied by the host.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package shadow

import (
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.shadow'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.shadow")
}

// Path is an opaque outline to paint a shadow for. Only surfaces know how to
// interpret it.
type Path interface{}

// Surface is a drawing sink supplied by the host.
type Surface interface {
	Metrics() css.Metrics // resolves relative lengths of shadow dimensions
	Paint(path Path, op Op)
}

// Kind tells outset shadows from inset shadows.
type Kind uint8

// Kinds of shadow paint operations.
const (
	Outset Kind = iota
	Inset
)

func (k Kind) String() string {
	if k == Inset {
		return "inset"
	}
	return "outset"
}

// Op is a single shadow paint operation, with all lengths in pixels.
type Op struct {
	Kind   Kind
	DX, DY float64
	Blur   float64
	Spread float64
	Color  css.Color
	Blend  BlendMode
}

// Paint is implemented by Shadow and Group.
type Paint interface {
	ApplyOutset(path Path, surface Surface)
	ApplyInset(path Path, surface Surface)
	String() string
}

// DefaultTint is the shadow color used if neither the shadow nor the defaults
// passed to Resolve name one.
var DefaultTint = css.Color{R: 0, G: 0, B: 0, A: 0x80}

// --- Shadow ----------------------------------------------------------------

// Shadow is a single shadow. Color and Blend are optional.
type Shadow struct {
	Inset  bool
	H, V   css.Dimension
	Blur   css.Dimension
	Spread css.Dimension
	Color  *css.Color
	Blend  *BlendMode
}

var _ Paint = (*Shadow)(nil)

// ApplyOutset paints s if it is not an inset shadow.
func (s *Shadow) ApplyOutset(path Path, surface Surface) {
	if s.Inset {
		return
	}
	surface.Paint(path, s.op(Outset, surface.Metrics()))
}

// ApplyInset paints s if it is an inset shadow.
func (s *Shadow) ApplyInset(path Path, surface Surface) {
	if !s.Inset {
		return
	}
	surface.Paint(path, s.op(Inset, surface.Metrics()))
}

func (s *Shadow) op(kind Kind, m css.Metrics) Op {
	px := func(d css.Dimension) float64 {
		v, ok := d.Pixels(m)
		if !ok {
			tracer().Debugf("shadow: %s is not a length, using 0", d)
		}
		return v
	}
	op := Op{
		Kind:   kind,
		DX:     px(s.H),
		DY:     px(s.V),
		Blur:   px(s.Blur),
		Spread: px(s.Spread),
		Color:  s.Tint(),
		Blend:  BlendNormal,
	}
	if s.Blend != nil {
		op.Blend = *s.Blend
	}
	return op
}

// Tint is the effective color of s.
func (s *Shadow) Tint() css.Color {
	if s.Color != nil {
		return *s.Color
	}
	return DefaultTint
}

// String returns the textual form of s, e.g. "inset 2px 2px 4px 0 rgb(0,0,0)".
func (s *Shadow) String() string {
	var b strings.Builder
	if s.Inset {
		b.WriteString("inset ")
	}
	b.WriteString(s.H.String())
	b.WriteByte(' ')
	b.WriteString(s.V.String())
	b.WriteByte(' ')
	b.WriteString(s.Blur.String())
	b.WriteByte(' ')
	b.WriteString(s.Spread.String())
	b.WriteByte(' ')
	b.WriteString(s.Tint().RGB())
	return b.String()
}

// --- Group -----------------------------------------------------------------

// Group is an ordered composition of paints. The zero value is an empty group.
type Group struct {
	members []Paint
}

var _ Paint = (*Group)(nil)

// NewGroup creates a group of members, in the given order.
func NewGroup(members ...Paint) *Group {
	g := &Group{}
	for _, p := range members {
		g.Add(p)
	}
	return g
}

// Add appends p to g. Nil paints are ignored.
func (g *Group) Add(p Paint) *Group {
	if p != nil {
		g.members = append(g.members, p)
	}
	return g
}

// Len returns the count of direct members of g.
func (g *Group) Len() int {
	return len(g.members)
}

// Members returns a copy of the direct members of g.
func (g *Group) Members() []Paint {
	m := make([]Paint, len(g.members))
	copy(m, g.members)
	return m
}

// ApplyOutset forwards the outset pass to every member.
func (g *Group) ApplyOutset(path Path, surface Surface) {
	for _, p := range g.members {
		p.ApplyOutset(path, surface)
	}
}

// ApplyInset forwards the inset pass to every member.
func (g *Group) ApplyInset(path Path, surface Surface) {
	for _, p := range g.members {
		p.ApplyInset(path, surface)
	}
}

func (g *Group) String() string {
	if len(g.members) == 0 {
		return "none"
	}
	parts := make([]string, len(g.members))
	for i, p := range g.members {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// --- Defaults --------------------------------------------------------------

// Defaults are applied to shadows which leave color or blend mode unset.
type Defaults struct {
	Tint  *css.Color
	Blend *BlendMode
}

// Resolve returns a copy of p with unset colors and blend modes filled in
// from d. p itself is left untouched, as paints are shared between targets.
func Resolve(p Paint, d Defaults) Paint {
	switch x := p.(type) {
	case *Shadow:
		s := *x
		if s.Color == nil && d.Tint != nil {
			c := *d.Tint
			s.Color = &c
		}
		if s.Blend == nil && d.Blend != nil {
			b := *d.Blend
			s.Blend = &b
		}
		return &s
	case *Group:
		g := &Group{members: make([]Paint, 0, len(x.members))}
		for _, m := range x.members {
			g.members = append(g.members, Resolve(m, d))
		}
		return g
	}
	return p
}
