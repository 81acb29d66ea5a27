package tween

import "math"

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

func Linear(t float64) float64 { return t }

func InOutSine(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

func OutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// swingLean scales the sine term of Swing. Values above 0.25 make the curve
// non-monotonic.
const swingLean = 0.15

// Swing blends a cosine in-out base with a sine perturbation: a revolution
// speeds up through the first half and slows to a stop through the second,
// with the peak speed pulled ahead of the midpoint. Swing(0) == 0 and
// Swing(1) == 1.
func Swing(t float64) float64 {
	s := math.Sin(math.Pi * t)
	return InOutSine(t) + swingLean*s*s
}
