package tween

import (
	"context"
	"time"
)

// group is the implementation of the Group interface.
type group struct {
	now    time.Duration
	active []*Tween
}

// Group owns a set of running tweens and steps them together.
// A Group is not safe for concurrent use; it is advanced from the tick goroutine.
type Group interface {
	// Start begins a tween at the group's current time.
	// Start values are read immediately. The tween is removed silently once ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancellation token for the tween (nil means never cancelled)
	//   - t: the tween to start
	Start(ctx context.Context, t *Tween)

	// Update sets the group time and steps every running tween.
	// Completion callbacks run after the finished tween was removed, so they may start new tweens.
	//
	// Parameters:
	//   - now: the current time, normally the scheduler clock
	Update(now time.Duration)

	// Active returns the number of running tweens.
	//
	// Returns:
	//   - int: the running tween count
	Active() int

	// Clear drops every running tween without completing it.
	Clear()
}

var _ Group = &group{}

// NewGroup creates an empty Group starting at time zero.
//
// Returns:
//   - Group: the new group
func NewGroup() Group {
	return &group{}
}

func (g *group) Start(ctx context.Context, t *Tween) {
	if ctx == nil {
		ctx = context.Background()
	}
	t.begin(ctx, g.now)
	g.active = append(g.active, t)
}

func (g *group) Update(now time.Duration) {
	g.now = now
	running := g.active[:0]
	var finished []*Tween
	for _, t := range g.active {
		if t.ctx.Err() != nil {
			continue
		}
		if t.step(now) {
			finished = append(finished, t)
			continue
		}
		running = append(running, t)
	}
	for i := len(running); i < len(g.active); i++ {
		g.active[i] = nil
	}
	g.active = running

	for _, t := range finished {
		if t.onComplete != nil && t.ctx.Err() == nil {
			t.onComplete()
		}
	}
}

func (g *group) Active() int {
	n := 0
	for _, t := range g.active {
		if t.ctx.Err() == nil {
			n++
		}
	}
	return n
}

func (g *group) Clear() {
	clear(g.active)
	g.active = g.active[:0]
}
