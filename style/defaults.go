package style

// Initial values of the properties stylers handle. These are not injected
// by the cascade: a property absent from a context stays absent. Stylers
// fall back to them when they need a value for an absent property.
var initialValues = map[string]Property{
	"transform":                 "none",
	"box-shadow":                "none",
	"shadow":                    "none",
	"opacity":                   "1",
	"color":                     "black",
	"background-color":          "transparent",
	"font-weight":               "normal",
	"font-style":                "normal",
	"padding-top":               "0",
	"padding-right":             "0",
	"padding-bottom":            "0",
	"padding-left":              "0",
	"margin-top":                "0",
	"margin-right":              "0",
	"margin-bottom":             "0",
	"margin-left":               "0",
	"animation-name":            "none",
	"animation-duration":        "0s",
	"animation-delay":           "0s",
	"animation-iteration-count": "1",
	"animation-timing-function": "ease",
}

// InitialValue returns the initial raw value of a property, or NullStyle
// for properties without one.
func InitialValue(key string) Property {
	return initialValues[key]
}

// InitialDeclaration returns a parsed declaration of the initial value of a
// property.
func InitialDeclaration(key string) (Declaration, bool) {
	p, ok := initialValues[key]
	if !ok {
		return Declaration{}, false
	}
	d := NewDeclaration(key, p, false)
	return d, d.Valid()
}
