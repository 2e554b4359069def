package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// EngineBuilderOption configures an engine inside NewEngine.
type EngineBuilderOption func(*engine)

// rateToPeriod converts a per-second rate to a period, falling back when the rate is not positive.
func rateToPeriod(fps float64, fallback time.Duration) time.Duration {
	if fps <= 0 {
		return fallback
	}
	return time.Duration(float64(time.Second) / fps)
}

// WithProfiling starts the engine with profiler logging on.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler. Nil is ignored.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithTickRate sets how many times per second posted events are drained and the tick callback runs.
// Non-positive rates select 60.
//
// Parameters:
//   - fps: ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = rateToPeriod(fps, time.Second/60)
	}
}

// WithWindow sets the window whose message loop Run drives. Without one the engine runs headless.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers s at z-index key. Lower keys render first.
//
// Parameters:
//   - key: the z-index
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit caps the render loop at fps frames per second. 0 leaves it uncapped, the default.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = rateToPeriod(fps, 0)
	}
}

// WithEventQueueSize sets the capacity of the Post queue (default 1024, minimum 1).
func WithEventQueueSize(n int) EngineBuilderOption {
	return func(e *engine) {
		e.events = make(chan any, max(n, 1))
	}
}
