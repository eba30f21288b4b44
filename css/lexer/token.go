package lexer

import (
	"fmt"

	"github.com/npillmayer/restyle/css"
)

// TokenType is the kind of a token.
type TokenType int16

// Token types. The numeric types are named after the unit family of their
// dimension. Every transform function has a token type of its own.
const (
	EOF TokenType = iota
	ERROR
	NUMBER
	LENGTH
	EMS
	EXS
	ANGLE
	TIME
	FREQUENCY
	PERCENTAGE
	TRANSLATE
	TRANSLATEX
	TRANSLATEY
	SCALE
	SCALEX
	SCALEY
	SKEW
	SKEWX
	SKEWY
	ROTATE
	MATRIX
	LPAREN
	RPAREN
	COMMA
	SLASH
	IDENT
	HASH
	STRING
	URL
	FUNCTION // function other than a transform function
)

var tokenTypeNames = [...]string{
	"EOF", "ERROR", "NUMBER", "LENGTH", "EMS", "EXS", "ANGLE", "TIME", "FREQUENCY",
	"PERCENTAGE", "TRANSLATE", "TRANSLATEX", "TRANSLATEY", "SCALE", "SCALEX", "SCALEY",
	"SKEW", "SKEWX", "SKEWY", "ROTATE", "MATRIX", "LPAREN", "RPAREN", "COMMA", "SLASH",
	"IDENT", "HASH", "STRING", "URL", "FUNCTION",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsNumeric is true for token types carrying a dimension.
func (tt TokenType) IsNumeric() bool {
	return tt >= NUMBER && tt <= PERCENTAGE
}

// IsTransform is true for the token types of transform functions.
func (tt TokenType) IsTransform() bool {
	return tt >= TRANSLATE && tt <= MATRIX
}

// TransformFunc returns the transform function for a transform token type.
func (tt TokenType) TransformFunc() css.TransformFunc {
	if !tt.IsTransform() {
		return css.NoTransform
	}
	return css.TransformFunc(tt-TRANSLATE) + css.Translate
}

func tokenTypeForFamily(f css.UnitFamily) TokenType {
	switch f {
	case css.FamilyLength:
		return LENGTH
	case css.FamilyEMS:
		return EMS
	case css.FamilyEXS:
		return EXS
	case css.FamilyAngle:
		return ANGLE
	case css.FamilyTime:
		return TIME
	case css.FamilyFrequency:
		return FREQUENCY
	case css.FamilyPercentage:
		return PERCENTAGE
	}
	return NUMBER
}

// Token is a lexeme of a property value. Start and End are byte offsets into
// the source text, with End = Start + len(lexeme).
type Token struct {
	Type  TokenType
	Start int
	End   int
	Text  string        // decoded text: identifier, hash without '#', unquoted string or URL
	Dimen css.Dimension // decoded value of numeric tokens
}

func (t Token) String() string {
	if t.Type.IsNumeric() {
		return fmt.Sprintf("%s[%d:%d](%s)", t.Type, t.Start, t.End, t.Dimen)
	}
	return fmt.Sprintf("%s[%d:%d](%q)", t.Type, t.Start, t.End, t.Text)
}

// Err returns a *LexicalError for ERROR tokens, nil otherwise.
func (t Token) Err() error {
	if t.Type != ERROR {
		return nil
	}
	return &LexicalError{Offset: t.Start, Text: t.Text}
}

// LexicalError reports an unrecognized character or unit sequence.
type LexicalError struct {
	Offset int
	Text   string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d: unexpected %q", e.Offset, e.Text)
}
