package engine

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	eventHandler   func(ev any)
	resizeCallback func(width, height int)

	// events posted from any goroutine, drained on the tick goroutine
	events chan any
	// overflowMu guards overflow, which holds events that did not fit in the queue. While it is non-empty
	// every Post appends to it so delivery order is kept.
	overflowMu *sync.Mutex
	overflow   []any
	// tasks that must run on the main (window) thread
	mainTasks chan func()

	scenesMu *sync.RWMutex
	scenes   map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastRenderErr    string
}

// Droppable marks events that Post may discard under back pressure, such as pointer motion that the
// next sample supersedes.
type Droppable interface {
	Droppable()
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after the posted events were handled.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetEventHandler registers the function that receives posted events on the tick goroutine.
	//
	// Parameters:
	//   - handler: function receiving each event in posting order
	SetEventHandler(handler func(ev any))

	// SetResizeCallback registers the function called on the main thread after the scenes were resized.
	// Zero sizes are filtered out before it runs.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderCallback registers the function called after each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues an event for the tick goroutine. Safe from any goroutine; never blocks.
	// When the queue is full, events implementing Droppable are discarded and every other event is kept
	// in an overflow list delivered after the queue, in posting order.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - bool: false if the event was dropped
	Post(ev any) bool

	// RunOnMain queues fn to run on the main thread during the next window loop iteration.
	// Used for window mutations (title, close) requested from the tick goroutine.
	//
	// Parameters:
	//   - fn: the task
	RunOnMain(fn func())

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the tick and render goroutines and runs the window loop on the calling goroutine,
	// which must be the main thread. Blocks until the window closes or Quit is called, then waits for
	// the goroutines to stop.
	Run()

	// Quit signals all engine goroutines to stop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes queues and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenesMu:        &sync.RWMutex{},
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		events:          make(chan any, 1024),
		overflowMu:      &sync.Mutex{},
		mainTasks:       make(chan func(), 64),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(e.drainMain)
	}

	return e
}

// resize reconfigures every scene's surface and camera aspect. Zero sizes (minimized) are ignored.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.scenesMu.RLock()
	for _, s := range e.scenes {
		if r := s.Renderer(); r != nil {
			r.Resize(width, height)
		}
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
	e.scenesMu.RUnlock()

	if e.resizeCallback != nil {
		e.resizeCallback(width, height)
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
	e.running.Store(false)
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit and stops the window loop.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Each tick drains the posted events into the event handler, then fires the tick callback. Listens for
// dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick runs one engine step on the tick goroutine.
func (e *engine) tick(dt float32) {
	e.drainEvents()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

// drainEvents hands every event queued so far to the event handler. Events posted while draining wait for
// the next tick.
func (e *engine) drainEvents() {
	e.overflowMu.Lock()
	pending := make([]any, 0, len(e.events)+len(e.overflow))
	for n := len(e.events); n > 0; n-- {
		pending = append(pending, <-e.events)
	}
	pending = append(pending, e.overflow...)
	e.overflow = nil
	e.overflowMu.Unlock()

	if e.eventHandler == nil {
		return
	}
	for _, ev := range pending {
		e.eventHandler(ev)
	}
}

// drainMain runs queued main-thread tasks. Installed as the window update callback.
func (e *engine) drainMain() {
	for {
		select {
		case fn := <-e.mainTasks:
			fn()
		default:
			return
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Renders the active scenes in ascending z-index order.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.renderScenes()

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled.Load() {
				e.profiler.Frame()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderScenes draws every active scene in ascending key order. A failing frame is logged once per distinct
// error so an unavailable surface does not flood the log.
func (e *engine) renderScenes() {
	for _, s := range e.activeScenes() {
		if s.Renderer() == nil {
			continue
		}
		if err := s.Render(); err != nil {
			if msg := err.Error(); msg != e.lastRenderErr {
				log.Printf("failed to render scene %s: %v", s.Name(), err)
				e.lastRenderErr = msg
			}
			continue
		}
		e.lastRenderErr = ""
	}
}

// activeScenes returns the active scenes sorted by z-index.
func (e *engine) activeScenes() []scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate changes the tick rate, taking effect on the next tick when running.
func (e *engine) SetTickRate(fps float64) {
	newRate := rateToPeriod(fps, time.Second/60)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// keep only the latest pending rate
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetEventHandler(handler func(ev any)) {
	e.eventHandler = handler
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = rateToPeriod(fps, 0)
}

func (e *engine) Post(ev any) bool {
	e.overflowMu.Lock()
	defer e.overflowMu.Unlock()

	if len(e.overflow) == 0 {
		select {
		case e.events <- ev:
			return true
		default:
		}
	}
	if _, ok := ev.(Droppable); ok {
		log.Printf("event queue full, dropping %T", ev)
		return false
	}
	e.overflow = append(e.overflow, ev)
	return true
}

func (e *engine) RunOnMain(fn func()) {
	select {
	case e.mainTasks <- fn:
	default:
		log.Printf("main thread queue full, dropping task")
	}
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
