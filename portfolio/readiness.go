package portfolio

import (
	"fmt"
	"slices"
	"sync"
)

// ReadinessState aggregates the model load results.
type ReadinessState int

const (
	// Loading means at least one expected result has not arrived.
	Loading ReadinessState = iota
	// Ready means every expected model loaded.
	Ready
	// Degraded means every result arrived and at least one load failed.
	Degraded
)

func (s ReadinessState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	default:
		return fmt.Sprintf("ReadinessState(%d)", int(s))
	}
}

// Readiness collects one result per expected key and settles exactly once.
type Readiness struct {
	mu          *sync.Mutex
	pending     map[string]struct{}
	failed      []string
	state       ReadinessState
	subscribers []func(ReadinessState)
}

// NewReadiness expects one Report per key. With no keys it starts Ready.
//
// Parameters:
//   - keys: the expected result keys
//
// Returns:
//   - *Readiness: the aggregate
func NewReadiness(keys ...string) *Readiness {
	r := &Readiness{
		mu:      &sync.Mutex{},
		pending: make(map[string]struct{}, len(keys)),
	}
	for _, k := range keys {
		r.pending[k] = struct{}{}
	}
	if len(r.pending) == 0 {
		r.state = Ready
	}
	return r
}

// Report records the result for key. Unknown keys and repeated reports are ignored.
// Subscribers run on the reporting goroutine when the last result arrives.
//
// Parameters:
//   - key: the result key
//   - err: the load error, nil on success
func (r *Readiness) Report(key string, err error) {
	r.mu.Lock()
	if _, ok := r.pending[key]; !ok || r.state != Loading {
		r.mu.Unlock()
		return
	}
	delete(r.pending, key)
	if err != nil {
		r.failed = append(r.failed, key)
	}
	if len(r.pending) > 0 {
		r.mu.Unlock()
		return
	}
	r.state = Ready
	if len(r.failed) > 0 {
		r.state = Degraded
	}
	state, subs := r.state, slices.Clone(r.subscribers)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers fn for the settled state. If the state has already settled fn runs immediately.
//
// Parameters:
//   - fn: receives Ready or Degraded
func (r *Readiness) Subscribe(fn func(ReadinessState)) {
	r.mu.Lock()
	if r.state == Loading {
		r.subscribers = append(r.subscribers, fn)
		r.mu.Unlock()
		return
	}
	state := r.state
	r.mu.Unlock()
	fn(state)
}

// State returns the current aggregate state.
func (r *Readiness) State() ReadinessState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Failed returns the keys whose load failed, in report order.
func (r *Readiness) Failed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.failed)
}
