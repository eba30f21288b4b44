package styler

import (
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/tyse/core/dimen"
)

// Host objects (or parts of host objects) opt in to styling domains by
// implementing capability interfaces. Setters replace state.

// Transformable objects accept a 2D transform.
type Transformable interface {
	SetTransform(list css.TransformList, m css.Affine)
}

// ShadowTarget objects accept a shadow paint. A nil paint removes shadows.
type ShadowTarget interface {
	SetShadow(p shadow.Paint)
}

// FontTarget objects accept a font face.
type FontTarget interface {
	SetFont(face font.Face)
}

// ColorTarget objects accept a foreground color.
type ColorTarget interface {
	SetColor(c css.Color)
}

// BackgroundTarget objects accept a background color.
type BackgroundTarget interface {
	SetBackgroundColor(c css.Color)
}

// OpacityTarget objects accept an opacity in [0,1].
type OpacityTarget interface {
	SetOpacity(alpha float64)
}

// PaddingTarget objects accept padding insets.
type PaddingTarget interface {
	SetPadding(insets Insets)
}

// Animatable objects accept a keyframe animation. A nil animation stops
// animating.
type Animatable interface {
	SetAnimation(a *Animation)
}

// Measured may be implemented by host objects to provide the metrics
// relative lengths are resolved with.
type Measured interface {
	StyleMetrics() css.Metrics
}

func metricsOf(receiver any, fallback css.Metrics) css.Metrics {
	if m, ok := receiver.(Measured); ok {
		return m.StyleMetrics()
	}
	return fallback
}

// Insets are padding widths in typesetting units.
type Insets struct {
	Top, Right, Bottom, Left dimen.DU
}

func (in Insets) String() string {
	return fmt.Sprintf("[%d %d %d %d]", in.Top, in.Right, in.Bottom, in.Left)
}

// Animation is a keyframe animation bound to a target.
type Animation struct {
	Keyframes  *keyframes.Keyframe
	Duration   time.Duration
	Delay      time.Duration
	Iterations float64 // +Inf for 'infinite'
	Timing     string  // timing function, e.g. "ease-in"
}

// Infinite is true for animations repeating forever.
func (a *Animation) Infinite() bool {
	return math.IsInf(a.Iterations, 1)
}

func (a *Animation) String() string {
	if a == nil || a.Keyframes == nil {
		return "none"
	}
	count := "infinite"
	if !a.Infinite() {
		count = fmt.Sprintf("%g", a.Iterations)
	}
	return fmt.Sprintf("%s %s %s %s %s", a.Keyframes.Name(), a.Duration, a.Timing, a.Delay, count)
}
