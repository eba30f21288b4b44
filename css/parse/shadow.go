package parse

import (
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/css/lexer"
	"github.com/npillmayer/restyle/shadow"
)

// Shadow parses a shadow value. Layers are separated by commas, each of the
// form
//
//	[inset] <h> <v> [<blur> [<spread>]] [<color>] [<blend-mode>]
//
// with inset, color and blend mode allowed in any position around the
// lengths. A single layer yields a *shadow.Shadow, several layers yield a
// *shadow.Group. "none" yields an empty group.
func Shadow(text string) (shadow.Paint, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	if p.is(lexer.IDENT) && p.peek().Text == "none" {
		p.advance()
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return shadow.NewGroup(), nil
	}
	var layers []*shadow.Shadow
	for {
		s, err := p.shadowLayer()
		if err != nil {
			return nil, err
		}
		layers = append(layers, s)
		if p.atEnd() {
			break
		}
		if err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
	}
	if len(layers) == 1 {
		return layers[0], nil
	}
	g := shadow.NewGroup()
	for _, s := range layers {
		g.Add(s)
	}
	return g, nil
}

func (p *parser) shadowLayer() (*shadow.Shadow, error) {
	s := &shadow.Shadow{}
	var lengths []css.Dimension
	start := p.peek().Start
	for !p.atEnd() && !p.is(lexer.COMMA) {
		t := p.peek()
		switch {
		case t.Type == lexer.IDENT && t.Text == "inset" && !s.Inset:
			p.advance()
			s.Inset = true
		case t.Type.IsNumeric():
			if len(lengths) == 4 {
				return nil, p.syntaxError("too many lengths in shadow")
			}
			p.advance()
			if !t.Dimen.IsLength() && !(t.Dimen.Unit == css.Number && t.Dimen.Value == 0) {
				return nil, &SyntaxError{Offset: t.Start, Msg: "shadow offsets must be lengths"}
			}
			lengths = append(lengths, t.Dimen)
		case s.Color == nil && p.startsColor():
			c, err := p.color()
			if err != nil {
				return nil, err
			}
			s.Color = &c
		case t.Type == lexer.IDENT && s.Blend == nil:
			b, ok := shadow.ParseBlendMode(t.Text)
			if !ok {
				return nil, &SyntaxError{Offset: t.Start, Msg: "unexpected " + t.Text + " in shadow"}
			}
			p.advance()
			s.Blend = &b
		default:
			return nil, p.syntaxError("unexpected " + t.Type.String() + " in shadow")
		}
	}
	if len(lengths) < 2 {
		return nil, &SyntaxError{Offset: start, Msg: "shadow needs at least two offsets"}
	}
	s.H, s.V = lengths[0], lengths[1]
	if len(lengths) > 2 {
		s.Blur = lengths[2]
	}
	if len(lengths) > 3 {
		s.Spread = lengths[3]
	}
	return s, nil
}
