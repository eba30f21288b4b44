package css

import (
	"math"
	"strconv"
	"time"

	"github.com/npillmayer/tyse/core/dimen"
)

// UnitFamily groups concrete units into families of comparable quantities.
type UnitFamily uint8

// Unit families. EMS and EXS are lengths relative to the current font and are
// kept apart from absolute lengths.
const (
	FamilyNumber UnitFamily = iota
	FamilyLength
	FamilyAngle
	FamilyTime
	FamilyFrequency
	FamilyPercentage
	FamilyEMS
	FamilyEXS
)

var familyNames = [...]string{
	FamilyNumber:     "NUMBER",
	FamilyLength:     "LENGTH",
	FamilyAngle:      "ANGLE",
	FamilyTime:       "TIME",
	FamilyFrequency:  "FREQUENCY",
	FamilyPercentage: "PERCENTAGE",
	FamilyEMS:        "EMS",
	FamilyEXS:        "EXS",
}

func (f UnitFamily) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "UnitFamily(" + strconv.Itoa(int(f)) + ")"
}

// Unit is a concrete unit of a dimension.
type Unit uint8

// Concrete units. Number is the unit of a plain, unit-less float.
const (
	Number Unit = iota
	Pixels
	DevicePixels
	Centimeters
	Millimeters
	Inches
	Points
	Picas
	Degrees
	Radians
	Gradians
	Milliseconds
	Seconds
	Hertz
	Kilohertz
	Percent
	EMs
	EXs
)

type unitInfo struct {
	name   string
	suffix string
	family UnitFamily
}

var units = [...]unitInfo{
	Number:       {"NUMBER", "", FamilyNumber},
	Pixels:       {"PIXELS", "px", FamilyLength},
	DevicePixels: {"DEVICE_PIXELS", "dpx", FamilyLength},
	Centimeters:  {"CENTIMETERS", "cm", FamilyLength},
	Millimeters:  {"MILLIMETERS", "mm", FamilyLength},
	Inches:       {"INCHES", "in", FamilyLength},
	Points:       {"POINTS", "pt", FamilyLength},
	Picas:        {"PICAS", "pc", FamilyLength},
	Degrees:      {"DEGREES", "deg", FamilyAngle},
	Radians:      {"RADIANS", "rad", FamilyAngle},
	Gradians:     {"GRADIANS", "grad", FamilyAngle},
	Milliseconds: {"MILLISECONDS", "ms", FamilyTime},
	Seconds:      {"SECONDS", "s", FamilyTime},
	Hertz:        {"HERTZ", "Hz", FamilyFrequency},
	Kilohertz:    {"KILOHERTZ", "KHz", FamilyFrequency},
	Percent:      {"PERCENTAGE", "%", FamilyPercentage},
	EMs:          {"EMS", "em", FamilyEMS},
	EXs:          {"EXS", "ex", FamilyEXS},
}

var unitBySuffix = func() map[string]Unit {
	m := make(map[string]Unit, len(units))
	for u, info := range units {
		if info.suffix != "" {
			m[info.suffix] = Unit(u)
		}
	}
	return m
}()

// UnitForSuffix returns the unit for a unit suffix as it appears in
// stylesheet source, e.g. "px" or "KHz". Suffixes are case sensitive.
func UnitForSuffix(suffix string) (Unit, bool) {
	u, ok := unitBySuffix[suffix]
	return u, ok
}

func (u Unit) String() string {
	if int(u) < len(units) {
		return units[u].name
	}
	return "Unit(" + strconv.Itoa(int(u)) + ")"
}

// Suffix returns the source form of the unit, e.g. "deg". Number has an
// empty suffix.
func (u Unit) Suffix() string {
	if int(u) < len(units) {
		return units[u].suffix
	}
	return ""
}

// Family returns the unit family u belongs to.
func (u Unit) Family() UnitFamily {
	if int(u) < len(units) {
		return units[u].family
	}
	return FamilyNumber
}

// --- Metrics ---------------------------------------------------------------

// Metrics are the environment parameters needed to resolve relative lengths.
type Metrics struct {
	EmSize      float64 // font size in pixels; 1ex is taken as half of it
	DeviceScale float64 // device pixels per pixel
}

// DefaultMetrics are used whenever a host does not supply its own.
var DefaultMetrics = Metrics{EmSize: 16, DeviceScale: 1}

func (m Metrics) normalized() Metrics {
	if m.EmSize <= 0 {
		m.EmSize = DefaultMetrics.EmSize
	}
	if m.DeviceScale <= 0 {
		m.DeviceScale = DefaultMetrics.DeviceScale
	}
	return m
}

// --- Dimension -------------------------------------------------------------

// Dimension is a numeric value tagged with a unit.
type Dimension struct {
	Value float64
	Unit  Unit
}

/*
type Dimension
	= Number float
	| Length float unit
	| Angle float unit
	| Time float unit
	| Frequency float unit
	| Percentage float
	| EMs float
	| EXs float
*/

// Dimen creates a dimension of value x with unit u.
func Dimen(x float64, u Unit) Dimension {
	return Dimension{Value: x, Unit: u}
}

// Num creates a unit-less dimension.
func Num(x float64) Dimension {
	return Dimension{Value: x, Unit: Number}
}

// Family returns the unit family of d.
func (d Dimension) Family() UnitFamily {
	return d.Unit.Family()
}

// IsLength is true for absolute and font-relative lengths.
func (d Dimension) IsLength() bool {
	switch d.Family() {
	case FamilyLength, FamilyEMS, FamilyEXS:
		return true
	}
	return false
}

// String returns the source form of d, e.g. "10px".
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit.Suffix()
}

// Pixels converts a length to pixels (1in = 96px). Plain numbers are taken as
// pixels. The second return value is false for non-length dimensions.
func (d Dimension) Pixels(m Metrics) (float64, bool) {
	m = m.normalized()
	switch d.Unit {
	case Number, Pixels:
		return d.Value, true
	case DevicePixels:
		return d.Value / m.DeviceScale, true
	case Centimeters:
		return d.Value * 96 / 2.54, true
	case Millimeters:
		return d.Value * 96 / 25.4, true
	case Inches:
		return d.Value * 96, true
	case Points:
		return d.Value * 96 / 72, true
	case Picas:
		return d.Value * 16, true
	case EMs:
		return d.Value * m.EmSize, true
	case EXs:
		return d.Value * m.EmSize / 2, true
	}
	return 0, false
}

// DU converts a length to typesetting units. One CSS pixel equals 3/4 of a
// big point.
func (d Dimension) DU(m Metrics) (dimen.DU, bool) {
	px, ok := d.Pixels(m)
	if !ok {
		return 0, false
	}
	return dimen.DU(math.Round(px * 0.75 * float64(dimen.BP))), true
}

// Radians converts an angle to radians. Plain numbers are taken as degrees.
func (d Dimension) Radians() (float64, bool) {
	switch d.Unit {
	case Number, Degrees:
		return d.Value * math.Pi / 180, true
	case Radians:
		return d.Value, true
	case Gradians:
		return d.Value * math.Pi / 200, true
	}
	return 0, false
}

// Duration converts a time to a time.Duration. Plain numbers are taken as
// seconds.
func (d Dimension) Duration() (time.Duration, bool) {
	switch d.Unit {
	case Number, Seconds:
		return time.Duration(d.Value * float64(time.Second)), true
	case Milliseconds:
		return time.Duration(d.Value * float64(time.Millisecond)), true
	}
	return 0, false
}

// Hertz converts a frequency to Hertz.
func (d Dimension) Hertz() (float64, bool) {
	switch d.Unit {
	case Hertz:
		return d.Value, true
	case Kilohertz:
		return d.Value * 1000, true
	}
	return 0, false
}

// Fraction returns a percentage as a fraction of 1. Plain numbers are
// returned unchanged.
func (d Dimension) Fraction() (float64, bool) {
	switch d.Unit {
	case Percent:
		return d.Value / 100, true
	case Number:
		return d.Value, true
	}
	return 0, false
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher for d, to be used in a switch statement:
//
//	switch m := d.Match(); m {
//	case m.Length(metrics, &px):
//	    ...
//	case m.Angle(&rad):
//	    ...
//	}
func (d Dimension) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher matches a dimension against its possible kinds. Every method
// returns the matcher itself if the dimension is of the requested kind and
// nil otherwise.
type Matcher struct {
	dimen Dimension
}

// IsFamily matches dimensions of unit family f.
func (m *Matcher) IsFamily(f UnitFamily) *Matcher {
	if m.dimen.Family() == f {
		return m
	}
	return nil
}

// Number matches plain numbers.
func (m *Matcher) Number(x *float64) *Matcher {
	if m.dimen.Unit == Number {
		if x != nil {
			*x = m.dimen.Value
		}
		return m
	}
	return nil
}

// Length matches absolute and font-relative lengths and stores the length
// in pixels.
func (m *Matcher) Length(metrics Metrics, px *float64) *Matcher {
	if !m.dimen.IsLength() {
		return nil
	}
	if px != nil {
		*px, _ = m.dimen.Pixels(metrics)
	}
	return m
}

// Angle matches angles and stores them in radians.
func (m *Matcher) Angle(rad *float64) *Matcher {
	if m.dimen.Family() != FamilyAngle {
		return nil
	}
	if rad != nil {
		*rad, _ = m.dimen.Radians()
	}
	return m
}

// Time matches times.
func (m *Matcher) Time(t *time.Duration) *Matcher {
	if m.dimen.Family() != FamilyTime {
		return nil
	}
	if t != nil {
		*t, _ = m.dimen.Duration()
	}
	return m
}

// Percentage matches percentages and stores them as a fraction of 1.
func (m *Matcher) Percentage(f *float64) *Matcher {
	if m.dimen.Unit != Percent {
		return nil
	}
	if f != nil {
		*f = m.dimen.Value / 100
	}
	return m
}
