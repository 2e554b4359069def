package tween

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestEasingEndpoints(t *testing.T) {
	for name, fn := range easings {
		assert.InDelta(t, 0, fn(0), tol, name)
		assert.InDelta(t, 1, fn(1), tol, name)
	}
}

func TestQuadraticOutShape(t *testing.T) {
	assert.InDelta(t, 0.75, QuadraticOut(0.5), tol)
	assert.InDelta(t, 0.19, QuadraticOut(0.1), tol)
	assert.Greater(t, QuadraticOut(0.5), Linear(0.5))
}

func TestEasingByName(t *testing.T) {
	fn, ok := EasingByName("quadratic-out")
	require.True(t, ok)
	assert.InDelta(t, QuadraticOut(0.3), fn(0.3), tol)

	_, ok = EasingByName("bounce")
	assert.False(t, ok)
}

// vec is a tiny property holder used to observe tween writes.
type vec struct{ v []float32 }

func (p *vec) get() []float32   { return p.v }
func (p *vec) set(v []float32) { copy(p.v, v) }

func TestGroupInterpolatesWithEasing(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{1, 1.5, 3}}
	done := 0

	g.Start(nil, New(p.get, p.set, []float32{0.7, 1.5, 1.4}, 1500*time.Millisecond,
		WithEasing(QuadraticOut),
		WithOnComplete(func() { done++ }),
	))
	require.Equal(t, 1, g.Active())

	g.Update(750 * time.Millisecond)
	e := QuadraticOut(0.5)
	assert.InDelta(t, 1+(0.7-1)*e, p.v[0], tol)
	assert.InDelta(t, 1.5, p.v[1], tol)
	assert.InDelta(t, 3+(1.4-3)*e, p.v[2], tol)
	assert.Zero(t, done)

	g.Update(1500 * time.Millisecond)
	assert.InDelta(t, 0.7, p.v[0], tol)
	assert.InDelta(t, 1.5, p.v[1], tol)
	assert.InDelta(t, 1.4, p.v[2], tol)
	assert.Equal(t, 1, done)
	assert.Zero(t, g.Active())

	g.Update(3 * time.Second)
	assert.Equal(t, 1, done, "completion runs once")
}

func TestTweenCapturesStartValuesAtStart(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{0}}
	tw := New(p.get, p.set, []float32{10}, time.Second)

	g.Update(time.Second)
	p.v[0] = 5
	g.Start(nil, tw)

	g.Update(1500 * time.Millisecond)
	assert.InDelta(t, 7.5, p.v[0], tol)
}

func TestCancelledTweenStopsWithoutCompleting(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{0}}
	ctx, cancel := context.WithCancel(context.Background())
	completed := false

	g.Start(ctx, New(p.get, p.set, []float32{1}, time.Second, WithOnComplete(func() { completed = true })))
	g.Update(500 * time.Millisecond)
	mid := p.v[0]

	cancel()
	assert.Zero(t, g.Active())
	g.Update(2 * time.Second)
	assert.Equal(t, mid, p.v[0], "no writes after cancellation")
	assert.False(t, completed)
}

func TestCompletionMayStartAnotherTween(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{0}}

	g.Start(nil, New(p.get, p.set, []float32{1}, time.Second, WithOnComplete(func() {
		g.Start(nil, New(p.get, p.set, []float32{0}, time.Second))
	})))

	g.Update(time.Second)
	assert.Equal(t, float32(1), p.v[0])
	assert.Equal(t, 1, g.Active())

	g.Update(2 * time.Second)
	assert.Equal(t, float32(0), p.v[0])
	assert.Zero(t, g.Active())
}

func TestZeroDurationCompletesOnFirstUpdate(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{0}}
	var progress []float32
	g.Start(nil, New(p.get, p.set, []float32{4}, 0, WithOnUpdate(func(k float32) { progress = append(progress, k) })))

	g.Update(0)
	assert.Equal(t, float32(4), p.v[0])
	assert.Equal(t, []float32{1}, progress)
	assert.Zero(t, g.Active())
}

func TestClear(t *testing.T) {
	g := NewGroup()
	p := &vec{v: []float32{0}}
	g.Start(nil, New(p.get, p.set, []float32{1}, time.Second))
	g.Clear()
	g.Update(time.Second)
	assert.Zero(t, p.v[0])
}
