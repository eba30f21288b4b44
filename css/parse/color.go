package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/css/lexer"
	"golang.org/x/image/colornames"
)

// Color parses a color value: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// rgb()/rgba() in comma or space notation, "transparent" or an SVG
// color name.
func Color(text string) (css.Color, error) {
	p, err := newParser(text)
	if err != nil {
		return css.Color{}, err
	}
	c, err := p.color()
	if err != nil {
		return css.Color{}, err
	}
	if err := p.expectEnd(); err != nil {
		return css.Color{}, err
	}
	return c, nil
}

// startsColor is true if the next token may start a color.
func (p *parser) startsColor() bool {
	t := p.peek()
	switch t.Type {
	case lexer.HASH:
		return true
	case lexer.FUNCTION:
		return t.Text == "rgb" || t.Text == "rgba"
	case lexer.IDENT:
		_, ok := namedColor(t.Text)
		return ok
	}
	return false
}

func (p *parser) color() (css.Color, error) {
	t := p.peek()
	switch t.Type {
	case lexer.HASH:
		p.advance()
		c, ok := hexColor(t.Text)
		if !ok {
			return css.Color{}, &SyntaxError{Offset: t.Start, Msg: fmt.Sprintf("invalid hex color #%s", t.Text)}
		}
		return c, nil
	case lexer.IDENT:
		p.advance()
		c, ok := namedColor(t.Text)
		if !ok {
			return css.Color{}, &SyntaxError{Offset: t.Start, Msg: fmt.Sprintf("unknown color %q", t.Text)}
		}
		return c, nil
	case lexer.FUNCTION:
		if t.Text == "rgb" || t.Text == "rgba" {
			p.advance()
			return p.rgb()
		}
	}
	return css.Color{}, p.syntaxError(fmt.Sprintf("expected color, have %s", t.Type))
}

func namedColor(name string) (css.Color, bool) {
	name = strings.ToLower(name)
	if name == "transparent" {
		return css.Color{}, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return css.Color{}, false
	}
	return css.Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

func hexColor(h string) (css.Color, bool) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return css.Color{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return css.Color{}, false
	}
	return css.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// rgb parses the arguments of rgb() and rgba(), after the function name.
func (p *parser) rgb() (css.Color, error) {
	if err := p.expect(lexer.LPAREN); err != nil {
		return css.Color{}, err
	}
	var channels []css.Dimension
	slash := false
	for !p.is(lexer.RPAREN) {
		if len(channels) > 0 {
			switch {
			case p.is(lexer.COMMA):
				p.advance()
			case p.is(lexer.SLASH) && len(channels) == 3:
				p.advance()
				slash = true
			}
		}
		d, err := p.dimension()
		if err != nil {
			return css.Color{}, err
		}
		channels = append(channels, d)
	}
	p.advance()
	if len(channels) != 3 && len(channels) != 4 || slash && len(channels) != 4 {
		return css.Color{}, p.syntaxError(fmt.Sprintf("rgb() needs 3 or 4 channels, have %d", len(channels)))
	}
	c := css.Color{A: 0xff}
	var err error
	if c.R, err = channel(channels[0], 255); err != nil {
		return css.Color{}, err
	}
	if c.G, err = channel(channels[1], 255); err != nil {
		return css.Color{}, err
	}
	if c.B, err = channel(channels[2], 255); err != nil {
		return css.Color{}, err
	}
	if len(channels) == 4 {
		if c.A, err = channel(channels[3], 1); err != nil {
			return css.Color{}, err
		}
	}
	return c, nil
}

// channel scales a color channel to 0…255. Plain numbers range up to max,
// percentages up to 100%.
func channel(d css.Dimension, max float64) (uint8, error) {
	var x float64
	switch d.Unit {
	case css.Number:
		x = d.Value / max
	case css.Percent:
		x = d.Value / 100
	default:
		return 0, fmt.Errorf("color channel %s must be a number or a percentage", d)
	}
	x = math.Max(0, math.Min(1, x))
	return uint8(math.Round(x * 255)), nil
}
