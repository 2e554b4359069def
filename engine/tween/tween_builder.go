package tween

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(*Tween)

// WithEasing sets the easing function. The default is Linear.
//
// Parameters:
//   - easing: the easing function; nil keeps the current one
//
// Returns:
//   - TweenBuilderOption: a function that applies the easing option to a Tween
func WithEasing(easing EasingFunc) TweenBuilderOption {
	return func(t *Tween) {
		if easing != nil {
			t.easing = easing
		}
	}
}

// WithOnComplete sets a callback that runs once, after the final values were written.
// It does not run if the tween is cancelled.
//
// Parameters:
//   - fn: the completion callback
//
// Returns:
//   - TweenBuilderOption: a function that applies the completion callback to a Tween
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *Tween) {
		t.onComplete = fn
	}
}

// WithOnUpdate sets a callback that receives the linear progress after every step.
//
// Parameters:
//   - fn: the update callback
//
// Returns:
//   - TweenBuilderOption: a function that applies the update callback to a Tween
func WithOnUpdate(fn func(k float32)) TweenBuilderOption {
	return func(t *Tween) {
		t.onUpdate = fn
	}
}
