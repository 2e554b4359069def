// Package tween interpolates float32 properties over time with easing.
package tween

import (
	"context"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// Tween animates a fixed number of float32 channels from their values at start time to a target.
// Channel values are read through a getter when the tween starts and written through a setter on
// every update, so the same tween type drives camera positions, rotations or material opacities.
type Tween struct {
	get        func() []float32
	set        func([]float32)
	from       []float32
	to         []float32
	out        []float32
	duration   time.Duration
	easing     EasingFunc
	onComplete func()
	onUpdate   func(k float32)

	ctx     context.Context
	started time.Duration
}

// New creates a tween towards to over duration.
//
// Parameters:
//   - get: reads the current channel values; called once when the tween starts
//   - set: writes interpolated channel values
//   - to: the target values, one per channel
//   - duration: how long the tween runs
//   - options: functional options such as WithEasing or WithOnComplete
//
// Returns:
//   - *Tween: the tween, ready to be passed to Group.Start
func New(get func() []float32, set func([]float32), to []float32, duration time.Duration, options ...TweenBuilderOption) *Tween {
	t := &Tween{
		get:      get,
		set:      set,
		to:       append([]float32(nil), to...),
		out:      make([]float32, len(to)),
		duration: duration,
		easing:   Linear,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Duration returns the configured length of the tween.
func (t *Tween) Duration() time.Duration {
	return t.duration
}

// begin captures the start values and time.
func (t *Tween) begin(ctx context.Context, now time.Duration) {
	t.ctx = ctx
	t.started = now
	cur := t.get()
	t.from = make([]float32, len(t.to))
	copy(t.from, cur)
}

// step writes the interpolated values for now and reports whether the tween has finished.
func (t *Tween) step(now time.Duration) bool {
	k := float32(1)
	if t.duration > 0 {
		k = common.Clamp(float32(now-t.started)/float32(t.duration), 0, 1)
	}
	e := t.easing(k)
	for i := range t.to {
		t.out[i] = t.from[i] + (t.to[i]-t.from[i])*e
	}
	t.set(t.out)
	if t.onUpdate != nil {
		t.onUpdate(k)
	}
	return k >= 1
}
