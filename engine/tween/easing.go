package tween

import "github.com/chewxy/math32"

// EasingFunc maps linear progress k in [0, 1] to eased progress.
type EasingFunc func(k float32) float32

// Linear returns k unchanged.
func Linear(k float32) float32 {
	return k
}

// QuadraticIn starts slow and accelerates.
func QuadraticIn(k float32) float32 {
	return k * k
}

// QuadraticOut starts fast and decelerates into the target.
func QuadraticOut(k float32) float32 {
	return k * (2 - k)
}

// QuadraticInOut accelerates through the first half and decelerates through the second.
func QuadraticInOut(k float32) float32 {
	k *= 2
	if k < 1 {
		return 0.5 * k * k
	}
	k--
	return -0.5 * (k*(k-2) - 1)
}

// CubicOut decelerates more sharply than QuadraticOut.
func CubicOut(k float32) float32 {
	k--
	return k*k*k + 1
}

// SineInOut follows half a cosine period.
func SineInOut(k float32) float32 {
	return 0.5 * (1 - math32.Cos(math32.Pi*k))
}

var easings = map[string]EasingFunc{
	"linear":           Linear,
	"quadratic-in":     QuadraticIn,
	"quadratic-out":    QuadraticOut,
	"quadratic-in-out": QuadraticInOut,
	"cubic-out":        CubicOut,
	"sine-in-out":      SineInOut,
}

// EasingByName looks up an easing function by its configuration name.
//
// Parameters:
//   - name: one of linear, quadratic-in, quadratic-out, quadratic-in-out, cubic-out, sine-in-out
//
// Returns:
//   - EasingFunc: the easing function
//   - bool: false if the name is unknown
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}
