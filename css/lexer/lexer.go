/*
Package lexer scans property value text into typed tokens.

Raw scanning is done by the CSS scanner of the Gorilla toolkit. The lexer
adds exact byte offsets, merges signs into numbers, classifies unit suffixes
and recognizes the transform function names:

	"translate(-5px, 1em)"  →  TRANSLATE LPAREN LENGTH COMMA EMS RPAREN

Unit suffixes are case sensitive ("Hz", "KHz"). A numeric literal with an
unknown suffix is an ERROR token, as is any character the value grammar has
no use for.

A Lexer is not safe for concurrent use.
*/
package lexer

import (
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/restyle/css"
)

// Lexer produces tokens for a property value.
type Lexer struct {
	source  string
	scan    *scanner.Scanner
	pos     int            // byte offset of the next raw token
	peeked  *scanner.Token // raw token read ahead
	pending []Token        // tokens produced but not yet delivered
	done    bool
}

// New creates a lexer for text.
func New(text string) *Lexer {
	lx := &Lexer{}
	lx.SetSource(text)
	return lx
}

// SetSource resets the lexer to the start of text.
func (lx *Lexer) SetSource(text string) {
	lx.source = text
	lx.scan = scanner.New(lx.source)
	lx.pos = 0
	lx.peeked = nil
	lx.pending = lx.pending[:0]
	lx.done = false
}

// NextLexeme returns the next token. At the end of input it returns an EOF
// token, and keeps doing so on subsequent calls.
func (lx *Lexer) NextLexeme() Token {
	if len(lx.pending) > 0 {
		t := lx.pending[0]
		lx.pending = lx.pending[1:]
		return t
	}
	if lx.done {
		return lx.eof()
	}
	for {
		raw, start := lx.next()
		switch raw.Type {
		case scanner.TokenEOF:
			lx.done = true
			return lx.eof()
		case scanner.TokenError:
			lx.done = true
			return Token{Type: ERROR, Start: start, End: start + len(raw.Value), Text: raw.Value}
		case scanner.TokenS, scanner.TokenComment, scanner.TokenBOM:
			continue
		case scanner.TokenNumber, scanner.TokenPercentage, scanner.TokenDimension:
			return lx.number(raw.Value, start, "")
		case scanner.TokenChar:
			return lx.char(raw.Value, start)
		case scanner.TokenIdent:
			t := Token{Type: IDENT, Start: start, End: start + len(raw.Value), Text: raw.Value}
			if f, ok := css.TransformFuncByName(raw.Value); ok {
				t.Type = TRANSLATE + TokenType(f-css.Translate)
			}
			return t
		case scanner.TokenFunction:
			name := strings.TrimSuffix(raw.Value, "(")
			end := start + len(name)
			t := Token{Type: FUNCTION, Start: start, End: end, Text: name}
			if f, ok := css.TransformFuncByName(name); ok {
				t.Type = TRANSLATE + TokenType(f-css.Translate)
			}
			lx.pending = append(lx.pending, Token{Type: LPAREN, Start: end, End: end + 1, Text: "("})
			return t
		case scanner.TokenHash:
			return Token{Type: HASH, Start: start, End: start + len(raw.Value), Text: raw.Value[1:]}
		case scanner.TokenString:
			return Token{Type: STRING, Start: start, End: start + len(raw.Value), Text: unquote(raw.Value)}
		case scanner.TokenURI:
			return Token{Type: URL, Start: start, End: start + len(raw.Value), Text: urlText(raw.Value)}
		default:
			return Token{Type: ERROR, Start: start, End: start + len(raw.Value), Text: raw.Value}
		}
	}
}

// Tokens lexes the complete text. It stops at the first error.
func Tokens(text string) ([]Token, error) {
	lx := New(text)
	var tokens []Token
	for {
		t := lx.NextLexeme()
		if t.Type == EOF {
			return tokens, nil
		}
		if t.Type == ERROR {
			return tokens, t.Err()
		}
		tokens = append(tokens, t)
	}
}

func (lx *Lexer) eof() Token {
	return Token{Type: EOF, Start: len(lx.source), End: len(lx.source)}
}

// next returns the next raw token and its byte offset.
func (lx *Lexer) next() (*scanner.Token, int) {
	var raw *scanner.Token
	if lx.peeked != nil {
		raw, lx.peeked = lx.peeked, nil
	} else {
		raw = lx.scan.Next()
	}
	start := lx.pos
	if raw.Type != scanner.TokenEOF && raw.Type != scanner.TokenError {
		lx.pos += len(raw.Value)
	}
	return raw, start
}

func (lx *Lexer) peek() *scanner.Token {
	if lx.peeked == nil {
		lx.peeked = lx.scan.Next()
	}
	return lx.peeked
}

func (lx *Lexer) char(c string, start int) Token {
	t := Token{Start: start, End: start + len(c), Text: c}
	switch c {
	case "(":
		t.Type = LPAREN
	case ")":
		t.Type = RPAREN
	case ",":
		t.Type = COMMA
	case "/":
		t.Type = SLASH
	case "-", "+":
		switch lx.peek().Type {
		case scanner.TokenNumber, scanner.TokenPercentage, scanner.TokenDimension:
			raw, _ := lx.next()
			return lx.number(raw.Value, start, c)
		}
		t.Type = ERROR
	default:
		t.Type = ERROR
	}
	return t
}

// number classifies a numeric literal. sign is empty or the sign character
// directly preceding the literal.
func (lx *Lexer) number(lit string, start int, sign string) Token {
	end := start + len(sign) + len(lit)
	i := 0
	for i < len(lit) && (lit[i] >= '0' && lit[i] <= '9' || lit[i] == '.') {
		i++
	}
	text := sign + lit
	x, err := strconv.ParseFloat(sign+lit[:i], 64)
	if err != nil {
		return Token{Type: ERROR, Start: start, End: end, Text: text}
	}
	suffix := lit[i:]
	if suffix == "" {
		return Token{Type: NUMBER, Start: start, End: end, Text: text, Dimen: css.Num(x)}
	}
	unit, ok := css.UnitForSuffix(suffix)
	if !ok {
		return Token{Type: ERROR, Start: start, End: end, Text: text}
	}
	return Token{
		Type:  tokenTypeForFamily(unit.Family()),
		Start: start,
		End:   end,
		Text:  text,
		Dimen: css.Dimen(x, unit),
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func urlText(s string) string {
	s = strings.TrimSpace(s[len("url(") : len(s)-1])
	return unquote(s)
}
