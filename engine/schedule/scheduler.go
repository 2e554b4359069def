// Package schedule provides a deterministic timer queue driven by the engine tick.
// Timers never run on their own goroutine: they fire from inside Advance, on whichever goroutine
// advances the scheduler, so callbacks may touch tick-owned state without locking.
package schedule

import (
	"container/heap"
	"context"
	"time"
)

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// Scheduler is a virtual clock with one-shot timers.
// It replaces free-running wall-clock timers so that delays such as panel reveals, countdown ticks and
// inertia decay line up exactly with the tick that advances past their deadline.
type Scheduler interface {
	// Now returns the virtual time elapsed since the scheduler was created.
	//
	// Returns:
	//   - time.Duration: the current virtual time
	Now() time.Duration

	// After schedules fn to run once the clock has advanced by delay.
	// The timer is dropped without running if ctx is cancelled first.
	//
	// Parameters:
	//   - ctx: cancellation token for the timer (nil means never cancelled)
	//   - delay: how far in the future to run fn; values <= 0 fire on the next Advance
	//   - fn: the callback
	//
	// Returns:
	//   - *Timer: a handle that can stop this timer individually
	After(ctx context.Context, delay time.Duration, fn func()) *Timer

	// Advance moves the clock forward by dt and runs every timer that came due, in deadline order.
	// While a callback runs, Now reports that timer's deadline, so timers chained from inside a
	// callback are scheduled relative to when their parent was due rather than to the end of the step.
	//
	// Parameters:
	//   - dt: the amount of virtual time to advance
	Advance(dt time.Duration)

	// Pending returns the number of timers that have not yet fired or been stopped.
	//
	// Returns:
	//   - int: the pending timer count
	Pending() int
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a Scheduler whose clock starts at zero.
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler() Scheduler {
	return &scheduler{}
}

func (s *scheduler) Now() time.Duration {
	return s.now
}

func (s *scheduler) After(ctx context.Context, delay time.Duration, fn func()) *Timer {
	if ctx == nil {
		ctx = context.Background()
	}
	s.seq++
	t := &Timer{
		due: s.now + max(delay, 0),
		seq: s.seq,
		ctx: ctx,
		fn:  fn,
	}
	heap.Push(&s.timers, t)
	return t
}

func (s *scheduler) Advance(dt time.Duration) {
	target := s.now + max(dt, 0)
	for s.timers.Len() > 0 {
		next := s.timers[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.timers)
		if next.stopped || next.ctx.Err() != nil {
			continue
		}
		s.now = max(s.now, next.due)
		next.stopped = true
		next.fn()
	}
	s.now = target
}

func (s *scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && t.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	due     time.Duration
	seq     uint64
	ctx     context.Context
	fn      func()
	stopped bool
	index   int
}

// Stop prevents the timer from firing.
//
// Returns:
//   - bool: true if the call stopped the timer, false if it had already fired or been stopped
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// timerHeap orders timers by deadline, breaking ties by scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
