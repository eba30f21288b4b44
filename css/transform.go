package css

import (
	"fmt"
	"math"
	"strings"
)

// TransformFunc enumerates the 2D transform functions a transform value may
// be composed of.
type TransformFunc uint8

// The transform functions.
const (
	NoTransform TransformFunc = iota
	Translate
	TranslateX
	TranslateY
	Scale
	ScaleX
	ScaleY
	Skew
	SkewX
	SkewY
	Rotate
	Matrix
)

var transformNames = [...]string{
	NoTransform: "none",
	Translate:   "translate",
	TranslateX:  "translateX",
	TranslateY:  "translateY",
	Scale:       "scale",
	ScaleX:      "scaleX",
	ScaleY:      "scaleY",
	Skew:        "skew",
	SkewX:       "skewX",
	SkewY:       "skewY",
	Rotate:      "rotate",
	Matrix:      "matrix",
}

func (f TransformFunc) String() string {
	if int(f) < len(transformNames) {
		return transformNames[f]
	}
	return fmt.Sprintf("TransformFunc(%d)", int(f))
}

// TransformFuncByName finds a transform function by its source name. Names
// are case sensitive, as in "translateX".
func TransformFuncByName(name string) (TransformFunc, bool) {
	for f, n := range transformNames {
		if f > 0 && n == name {
			return TransformFunc(f), true
		}
	}
	return NoTransform, false
}

// Arity returns the minimum and maximum count of arguments for f.
func (f TransformFunc) Arity() (min, max int) {
	switch f {
	case Translate, Scale, Skew:
		return 1, 2
	case TranslateX, TranslateY, ScaleX, ScaleY, SkewX, SkewY, Rotate:
		return 1, 1
	case Matrix:
		return 6, 6
	}
	return 0, 0
}

// accepts is true if d is of a type the argument list of f accepts.
func (f TransformFunc) accepts(d Dimension) bool {
	switch f {
	case Translate, TranslateX, TranslateY:
		return d.Unit == Number || d.IsLength()
	case Scale, ScaleX, ScaleY:
		return d.Unit == Number || d.Unit == Percent
	case Skew, SkewX, SkewY:
		return d.Unit == Number || d.Family() == FamilyAngle
	case Rotate:
		return d.Family() == FamilyAngle || (d.Unit == Number && d.Value == 0)
	case Matrix:
		return d.Unit == Number
	}
	return false
}

// TransformCall is a single transform function applied to its arguments.
type TransformCall struct {
	Func TransformFunc
	Args []Dimension
}

// ArityError reports a transform call whose arguments violate the
// function's contract.
type ArityError struct {
	Func TransformFunc
	Got  int        // count of arguments
	Want [2]int     // min and max count
	Arg  *Dimension // offending argument, if the count is fine but a type is wrong
}

func (e *ArityError) Error() string {
	if e.Arg != nil {
		return fmt.Sprintf("transform %s: argument of type %s not allowed", e.Func, e.Arg.Family())
	}
	if e.Want[0] == e.Want[1] {
		return fmt.Sprintf("transform %s: expected %d argument(s), have %d", e.Func, e.Want[0], e.Got)
	}
	return fmt.Sprintf("transform %s: expected %d to %d arguments, have %d",
		e.Func, e.Want[0], e.Want[1], e.Got)
}

// Validate checks the arity and argument types of tc.
func (tc TransformCall) Validate() error {
	min, max := tc.Func.Arity()
	if max == 0 {
		return fmt.Errorf("unknown transform function %d", tc.Func)
	}
	if len(tc.Args) < min || len(tc.Args) > max {
		return &ArityError{Func: tc.Func, Got: len(tc.Args), Want: [2]int{min, max}}
	}
	for i := range tc.Args {
		if !tc.Func.accepts(tc.Args[i]) {
			arg := tc.Args[i]
			return &ArityError{Func: tc.Func, Got: len(tc.Args), Want: [2]int{min, max}, Arg: &arg}
		}
	}
	return nil
}

func (tc TransformCall) String() string {
	var b strings.Builder
	b.WriteString(tc.Func.String())
	b.WriteByte('(')
	for i, a := range tc.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Affine computes the 2D matrix for tc. Lengths are resolved to pixels with
// metrics m. tc is expected to be valid.
func (tc TransformCall) Affine(m Metrics) Affine {
	arg := func(i int, dflt float64) float64 {
		if i >= len(tc.Args) {
			return dflt
		}
		return tc.Args[i].Value
	}
	px := func(i int, dflt float64) float64 {
		if i >= len(tc.Args) {
			return dflt
		}
		v, _ := tc.Args[i].Pixels(m)
		return v
	}
	factor := func(i int, dflt float64) float64 {
		if i >= len(tc.Args) {
			return dflt
		}
		v, _ := tc.Args[i].Fraction()
		return v
	}
	rad := func(i int) float64 {
		if i >= len(tc.Args) {
			return 0
		}
		v, _ := tc.Args[i].Radians()
		return v
	}
	switch tc.Func {
	case Translate:
		return Affine{A: 1, D: 1, Tx: px(0, 0), Ty: px(1, 0)}
	case TranslateX:
		return Affine{A: 1, D: 1, Tx: px(0, 0)}
	case TranslateY:
		return Affine{A: 1, D: 1, Ty: px(0, 0)}
	case Scale:
		sx := factor(0, 1)
		return Affine{A: sx, D: factor(1, sx)}
	case ScaleX:
		return Affine{A: factor(0, 1), D: 1}
	case ScaleY:
		return Affine{A: 1, D: factor(0, 1)}
	case Skew:
		return Affine{A: 1, B: math.Tan(rad(1)), C: math.Tan(rad(0)), D: 1}
	case SkewX:
		return Affine{A: 1, C: math.Tan(rad(0)), D: 1}
	case SkewY:
		return Affine{A: 1, B: math.Tan(rad(0)), D: 1}
	case Rotate:
		r := rad(0)
		sin, cos := math.Sincos(r)
		return Affine{A: cos, B: sin, C: -sin, D: cos}
	case Matrix:
		return Affine{A: arg(0, 1), B: arg(1, 0), C: arg(2, 0), D: arg(3, 1), Tx: arg(4, 0), Ty: arg(5, 0)}
	}
	tracer().Errorf("cannot compute matrix for transform %s", tc.Func)
	return Identity()
}

// TransformList is a transform property value: a sequence of transform calls,
// applied left to right.
type TransformList []TransformCall

func (tl TransformList) String() string {
	if len(tl) == 0 {
		return "none"
	}
	parts := make([]string, len(tl))
	for i, tc := range tl {
		parts[i] = tc.String()
	}
	return strings.Join(parts, " ")
}

// Affine multiplies the matrices of all calls in tl.
func (tl TransformList) Affine(m Metrics) Affine {
	a := Identity()
	for _, tc := range tl {
		a = a.Mul(tc.Affine(m))
	}
	return a
}

// --- Affine matrix ---------------------------------------------------------

// Affine is a 2D affine matrix
//
//	| A C Tx |
//	| B D Ty |
//	| 0 0 1  |
type Affine struct {
	A, B, C, D, Tx, Ty float64
}

// Identity returns the identity matrix.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Mul returns m·n, i.e. n is applied first.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		Tx: m.A*n.Tx + m.C*n.Ty + m.Tx,
		Ty: m.B*n.Tx + m.D*n.Ty + m.Ty,
	}
}

// Apply transforms point (x,y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

func (m Affine) String() string {
	return fmt.Sprintf("matrix(%g, %g, %g, %g, %g, %g)", m.A, m.B, m.C, m.D, m.Tx, m.Ty)
}
