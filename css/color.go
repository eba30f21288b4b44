package css

import (
	"fmt"
	"image/color"
	"strings"
)

// Value is a typed property value. Concrete values are Dimension,
// TransformList, Color, Keyword and, from package shadow, shadow paints.
type Value interface {
	String() string
}

// Keyword is a literal identifier value, such as "bold" or "inherit".
// Values a parser does not know how to type are kept as keywords, too.
type Keyword string

func (k Keyword) String() string {
	return string(k)
}

// Inherit is the keyword requesting the parent's value.
const Inherit Keyword = "inherit"

// IsInherit is true if v is the keyword 'inherit'.
func IsInherit(v Value) bool {
	k, ok := v.(Keyword)
	return ok && strings.EqualFold(string(k), string(Inherit))
}

// Color is a non-premultiplied sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

var _ color.Color = Color{}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ColorFrom converts any image color to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Opaque is true if c has no transparency.
func (c Color) Opaque() bool {
	return c.A == 0xff
}

// String returns the functional notation of c, rgb(r,g,b) for opaque colors
// and rgba(r,g,b,a) otherwise.
func (c Color) String() string {
	if c.Opaque() {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}

// RGB returns the functional notation of c without alpha.
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
