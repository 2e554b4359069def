package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresAtDeadline(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(nil, 600*time.Millisecond, func() { fired = true })

	s.Advance(599 * time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, s.Pending())

	s.Advance(time.Millisecond)
	assert.True(t, fired)
	assert.Zero(t, s.Pending())
	assert.Equal(t, 600*time.Millisecond, s.Now())
}

func TestAdvanceRunsInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(nil, 300*time.Millisecond, func() { order = append(order, "c") })
	s.After(nil, 100*time.Millisecond, func() { order = append(order, "a") })
	s.After(nil, 200*time.Millisecond, func() { order = append(order, "b1") })
	s.After(nil, 200*time.Millisecond, func() { order = append(order, "b2") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
}

func TestChainedTimersUseParentDeadline(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, s.Now())
		if len(at) < 3 {
			s.After(nil, time.Second, tick)
		}
	}
	s.After(nil, time.Second, tick)

	// One large step must still fire every chained timer on its own deadline.
	s.Advance(10 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, at)
	assert.Equal(t, 10*time.Second, s.Now())
}

func TestCancelledContextDropsTimer(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	fired := false
	s.After(ctx, 100*time.Millisecond, func() { fired = true })

	cancel()
	assert.Zero(t, s.Pending())
	s.Advance(time.Second)
	assert.False(t, fired)
}

func TestTimerStop(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := s.After(nil, 100*time.Millisecond, func() { fired = true })

	require.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	s.Advance(time.Second)
	assert.False(t, fired)

	var nilTimer *Timer
	assert.False(t, nilTimer.Stop())
}

func TestZeroDelayFiresOnNextAdvance(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(nil, -time.Second, func() { fired = true })
	assert.False(t, fired)

	s.Advance(0)
	assert.True(t, fired)
}
