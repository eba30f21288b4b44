package css_test

import (
	"math"
	"testing"
	"time"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
)

func TestDimenMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.css")
	defer teardown()
	//
	ten := css.Dimen(10, css.Points)
	var px float64
	switch m := ten.Match(); m {
	case m.Angle(nil):
		t.Errorf("expected 10pt not to be an angle")
	case m.Length(css.DefaultMetrics, &px):
		t.Logf("px = %g", px)
	default:
		t.Errorf("expected 10pt to be a length, isn't: %#v", ten)
	}
	assert.InDelta(t, 13.333, px, 0.001)
	//
	half := css.Dimen(50, css.Percent)
	var f float64
	switch m := half.Match(); m {
	case m.Percentage(&f):
		t.Logf("fraction = %g", f)
	default:
		t.Errorf("expected 50%% to be a percentage, isn't: %#v", half)
	}
	assert.Equal(t, 0.5, f)
	//
	var d time.Duration
	ms := css.Dimen(250, css.Milliseconds)
	switch m := ms.Match(); m {
	case m.Time(&d):
	default:
		t.Errorf("expected 250ms to be a time, isn't: %#v", ms)
	}
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestDimenFamilies(t *testing.T) {
	assert.Equal(t, css.FamilyLength, css.Dimen(1, css.DevicePixels).Family())
	assert.Equal(t, css.FamilyAngle, css.Dimen(1, css.Gradians).Family())
	assert.Equal(t, css.FamilyFrequency, css.Dimen(1, css.Kilohertz).Family())
	assert.Equal(t, css.FamilyEMS, css.Dimen(1, css.EMs).Family())
	assert.Equal(t, css.FamilyEXS, css.Dimen(1, css.EXs).Family())
	assert.Equal(t, css.FamilyNumber, css.Num(1).Family())
	assert.True(t, css.Dimen(2, css.EXs).IsLength())
	assert.False(t, css.Dimen(2, css.Seconds).IsLength())
}

func TestDimenConversion(t *testing.T) {
	m := css.Metrics{EmSize: 20, DeviceScale: 2}
	cases := []struct {
		d    css.Dimension
		want float64
	}{
		{css.Dimen(1, css.Inches), 96},
		{css.Dimen(72, css.Points), 96},
		{css.Dimen(1, css.Picas), 16},
		{css.Dimen(2.54, css.Centimeters), 96},
		{css.Dimen(4, css.DevicePixels), 2},
		{css.Dimen(1.5, css.EMs), 30},
		{css.Dimen(1, css.EXs), 10},
	}
	for _, c := range cases {
		px, ok := c.d.Pixels(m)
		assert.True(t, ok, c.d.String())
		assert.InDelta(t, c.want, px, 1e-9, c.d.String())
	}
	_, ok := css.Dimen(1, css.Degrees).Pixels(m)
	assert.False(t, ok)
	//
	du, ok := css.Dimen(4, css.Pixels).DU(css.DefaultMetrics)
	assert.True(t, ok)
	assert.Equal(t, 3*dimen.BP, du)
	//
	rad, _ := css.Dimen(200, css.Gradians).Radians()
	assert.InDelta(t, math.Pi, rad, 1e-9)
	hz, _ := css.Dimen(2, css.Kilohertz).Hertz()
	assert.Equal(t, 2000.0, hz)
}

func TestDimenString(t *testing.T) {
	assert.Equal(t, "10px", css.Dimen(10, css.Pixels).String())
	assert.Equal(t, "0.5KHz", css.Dimen(0.5, css.Kilohertz).String())
	assert.Equal(t, "-3", css.Num(-3).String())
	assert.Equal(t, "12.5%", css.Dimen(12.5, css.Percent).String())
	u, ok := css.UnitForSuffix("grad")
	assert.True(t, ok)
	assert.Equal(t, css.Gradians, u)
	_, ok = css.UnitForSuffix("khz")
	assert.False(t, ok, "unit suffixes are case sensitive")
}

func TestTransformValidate(t *testing.T) {
	ok := css.TransformCall{Func: css.Translate, Args: []css.Dimension{css.Dimen(5, css.Pixels)}}
	assert.NoError(t, ok.Validate())
	bad := css.TransformCall{Func: css.Matrix, Args: []css.Dimension{css.Num(1), css.Num(0)}}
	err := bad.Validate()
	var arity *css.ArityError
	if assert.ErrorAs(t, err, &arity) {
		assert.Equal(t, 2, arity.Got)
		assert.Equal(t, [2]int{6, 6}, arity.Want)
	}
	wrongType := css.TransformCall{Func: css.Rotate, Args: []css.Dimension{css.Dimen(3, css.Pixels)}}
	assert.Error(t, wrongType.Validate())
	skew := css.TransformCall{Func: css.Skew, Args: []css.Dimension{css.Num(10), css.Dimen(1, css.Radians)}}
	assert.NoError(t, skew.Validate())
}

func TestTransformAffine(t *testing.T) {
	tl := css.TransformList{
		{Func: css.Translate, Args: []css.Dimension{css.Dimen(10, css.Pixels), css.Dimen(1, css.EMs)}},
		{Func: css.Rotate, Args: []css.Dimension{css.Dimen(90, css.Degrees)}},
		{Func: css.Scale, Args: []css.Dimension{css.Num(2)}},
	}
	a := tl.Affine(css.DefaultMetrics)
	x, y := a.Apply(1, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 18, y, 1e-9)
	assert.Equal(t, "translate(10px, 1em) rotate(90deg) scale(2)", tl.String())
	//
	m := css.TransformCall{Func: css.Matrix, Args: []css.Dimension{
		css.Num(1), css.Num(0), css.Num(0), css.Num(1), css.Num(7), css.Num(8)}}
	assert.Equal(t, css.Affine{A: 1, D: 1, Tx: 7, Ty: 8}, m.Affine(css.DefaultMetrics))
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "rgb(255,0,16)", css.Color{R: 255, B: 16, A: 255}.String())
	assert.Equal(t, "rgba(0,0,0,0.502)", css.Color{A: 128}.String())
	assert.True(t, css.IsInherit(css.Keyword("inherit")))
	assert.False(t, css.IsInherit(css.Num(0)))
}
