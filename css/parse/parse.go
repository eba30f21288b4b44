/*
Package parse turns property value text into typed values.

Parsing is driven by the property name: transforms produce a
css.TransformList, shadows a shadow.Paint, color properties a css.Color,
numeric properties a css.Dimension. Everything else is kept as a css.Keyword.
The keyword 'inherit' is accepted for every property.

All functions of this package return either a value or an error, never both.
Errors are *lexer.LexicalError, *css.ArityError or *SyntaxError.
*/
package parse

import (
	"fmt"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/css/lexer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.css'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.css")
}

// ArityError is returned for transform calls with wrong argument count or
// argument types.
type ArityError = css.ArityError

// SyntaxError reports a token sequence the value grammar does not allow.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

var numericProperties = map[string]bool{
	"font-size":                 true,
	"font-weight":               true,
	"opacity":                   true,
	"width":                     true,
	"height":                    true,
	"line-height":               true,
	"border-radius":             true,
	"animation-duration":        true,
	"animation-delay":           true,
	"animation-iteration-count": true,
}

func isNumeric(property string) bool {
	if numericProperties[property] {
		return true
	}
	if strings.HasPrefix(property, "border-") && strings.HasSuffix(property, "-width") {
		return true
	}
	return strings.HasPrefix(property, "padding-") || strings.HasPrefix(property, "margin-")
}

// Value parses text as the value of property.
func Value(property, text string) (css.Value, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, string(css.Inherit)) {
		return css.Inherit, nil
	}
	switch {
	case property == "transform":
		return value(Transforms(text))
	case property == "box-shadow" || property == "shadow":
		return value(Shadow(text))
	case property == "color" || strings.HasSuffix(property, "-color"):
		return value(Color(text))
	case isNumeric(property):
		return dimensionOrKeyword(text)
	}
	return Keyword(text)
}

// value drops v if err is set, so no typed nil leaks into an interface.
func value[T css.Value](v T, err error) (css.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Keyword parses text as a keyword value. A single quoted string is
// unquoted, anything else is kept verbatim after checking it lexes.
func Keyword(text string) (css.Value, error) {
	toks, err := lexer.Tokens(text)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 && toks[0].Type == lexer.STRING {
		return css.Keyword(toks[0].Text), nil
	}
	return css.Keyword(strings.TrimSpace(text)), nil
}

// Dimension parses a single numeric value.
func Dimension(text string) (css.Dimension, error) {
	p, err := newParser(text)
	if err != nil {
		return css.Dimension{}, err
	}
	d, err := p.dimension()
	if err != nil {
		return css.Dimension{}, err
	}
	if err := p.expectEnd(); err != nil {
		return css.Dimension{}, err
	}
	return d, nil
}

func dimensionOrKeyword(text string) (css.Value, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	if len(p.toks) == 1 && p.toks[0].Type == lexer.IDENT {
		return css.Keyword(p.toks[0].Text), nil
	}
	return value(Dimension(text))
}

// Transforms parses a transform list, e.g. "translate(10px, 5px) rotate(45deg)".
// The keyword 'none' yields an empty list.
func Transforms(text string) (css.TransformList, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	if p.is(lexer.IDENT) && p.peek().Text == "none" {
		p.advance()
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return css.TransformList{}, nil
	}
	var list css.TransformList
	for !p.atEnd() {
		tc, err := p.transform()
		if err != nil {
			return nil, err
		}
		list = append(list, tc)
	}
	if len(list) == 0 {
		return nil, p.syntaxError("expected transform function")
	}
	return list, nil
}

func (p *parser) transform() (css.TransformCall, error) {
	t := p.peek()
	if !t.Type.IsTransform() {
		return css.TransformCall{}, p.syntaxError("expected transform function")
	}
	p.advance()
	tc := css.TransformCall{Func: t.Type.TransformFunc()}
	if err := p.expect(lexer.LPAREN); err != nil {
		return tc, err
	}
	for !p.is(lexer.RPAREN) {
		if len(tc.Args) > 0 {
			if err := p.expect(lexer.COMMA); err != nil {
				return tc, err
			}
		}
		d, err := p.dimension()
		if err != nil {
			return tc, err
		}
		tc.Args = append(tc.Args, d)
	}
	p.advance()
	if err := tc.Validate(); err != nil {
		tracer().Debugf("invalid transform %s at offset %d: %v", tc, t.Start, err)
		return tc, err
	}
	return tc, nil
}

// --- Token stream ----------------------------------------------------------

type parser struct {
	toks []lexer.Token
	pos  int
	end  int // byte length of the source
}

func newParser(text string) (*parser, error) {
	toks, err := lexer.Tokens(text)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks, end: len(text)}, nil
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() lexer.Token {
	if p.atEnd() {
		return lexer.Token{Type: lexer.EOF, Start: p.end, End: p.end}
	}
	return p.toks[p.pos]
}

func (p *parser) is(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *parser) advance() lexer.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt lexer.TokenType) error {
	if !p.is(tt) {
		return p.syntaxError(fmt.Sprintf("expected %s, have %s", tt, p.peek().Type))
	}
	p.advance()
	return nil
}

func (p *parser) expectEnd() error {
	if !p.atEnd() {
		return p.syntaxError(fmt.Sprintf("unexpected %s", p.peek().Type))
	}
	return nil
}

func (p *parser) dimension() (css.Dimension, error) {
	t := p.peek()
	if !t.Type.IsNumeric() {
		return css.Dimension{}, p.syntaxError(fmt.Sprintf("expected number, have %s", t.Type))
	}
	p.advance()
	return t.Dimen, nil
}

func (p *parser) syntaxError(msg string) error {
	return &SyntaxError{Offset: p.peek().Start, Msg: msg}
}
