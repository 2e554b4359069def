package profiler

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler tracks tick rate, frame rate and memory statistics for performance monitoring.
// Ticks and frames are counted from different goroutines; stats are sampled and logged from Tick
// once the update interval has elapsed.
type Profiler struct {
	ticks  atomic.Int64
	frames atomic.Int64

	mu             *sync.Mutex
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	logf           func(format string, args ...any)
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// Stats is one sample of the profiler counters.
type Stats struct {
	TPS         float64 // ticks per second
	FPS         float64 // rendered frames per second
	HeapMB      float64 // live heap
	AllocRateMB float64 // heap allocation rate in MB/s
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64 // longest pause since the previous sample
	SysMB       float64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are sampled and logged. Defaults to 1 second.
//
// Parameters:
//   - d: the sampling interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithClock replaces time.Now, for tests.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogger replaces log.Printf as the output for samples.
//
// Parameters:
//   - logf: a printf-style function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logf func(format string, args ...any)) ProfilerOption {
	return func(p *Profiler) {
		p.logf = logf
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Frame should be called once per rendered frame.
func (p *Profiler) Frame() {
	p.frames.Add(1)
}

// Tick should be called once per engine tick. Samples and logs the statistics when the update interval
// has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.ticks.Add(1)

	p.mu.Lock()
	defer p.mu.Unlock()

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Stats{
		TPS: float64(p.ticks.Swap(0)) / elapsed.Seconds(),
		FPS: float64(p.frames.Swap(0)) / elapsed.Seconds(),
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the process footprint.
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logf("[Profiler] TPS: %.2f | FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.TPS, s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recent sample.
//
// Returns:
//   - Stats: the last logged sample, zero before the first
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
