package camera

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/schedule"
	"github.com/charmbracelet/harmonica"
)

// cameraControllerImpl is the implementation of CameraController.
// Mouse and touch share one drag state; only their gates are separate.
type cameraControllerImpl struct {
	mu *sync.Mutex

	camera    Camera
	scheduler schedule.Scheduler

	dragging bool
	// touchDrag is true when the active drag was started by touch.
	touchDrag bool
	lastX     float32
	velocity  float32

	mouseEnabled bool
	touchEnabled bool

	dragScale    float32
	inertiaDelay time.Duration
	inertiaMode  InertiaMode

	// decay is the pending timer that zeroes velocity after release.
	decay *schedule.Timer
	// coasting is true between release and decay.
	coasting bool

	spring          harmonica.Spring
	springDT        time.Duration
	springFrequency float64
	springDamping   float64
	springAccel     float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a drag controller for cam.
// Both gates start open. The decay timer runs on sched, so velocity only reaches zero when the
// scheduler is advanced past the inertia delay.
//
// Parameters:
//   - cam: the camera whose yaw is driven
//   - sched: the scheduler that owns the inertia decay timer
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, sched schedule.Scheduler, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:              &sync.Mutex{},
		camera:          cam,
		scheduler:       sched,
		mouseEnabled:    true,
		touchEnabled:    true,
		dragScale:       0.001,
		inertiaDelay:    600 * time.Millisecond,
		inertiaMode:     InertiaHold,
		springFrequency: 4.0,
		springDamping:   1.0,
	}
	for _, option := range options {
		option(cc)
	}
	cc.spring = harmonica.NewSpring(harmonica.FPS(60), cc.springFrequency, cc.springDamping)
	cc.springDT = time.Second / 60
	return cc
}

// --- internal helpers ---

// press begins a drag at x.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) press(x float32, touch bool) {
	cc.dragging = true
	cc.touchDrag = touch
	cc.lastX = x
	cc.velocity = 0
	cc.coasting = false
	cc.springAccel = 0
	cc.decay.Stop()
	cc.decay = nil
}

// move updates the velocity from the pointer delta.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) move(x float32) {
	if !cc.dragging {
		return
	}
	cc.velocity = (x - cc.lastX) * cc.dragScale
	cc.lastX = x
}

// release ends the drag and schedules the decay.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) release() {
	cc.dragging = false
	cc.decay.Stop()
	cc.coasting = true
	cc.springAccel = 0
	cc.decay = cc.scheduler.After(nil, cc.inertiaDelay, cc.stop)
}

// stop zeroes the velocity. Runs from the scheduler.
func (cc *cameraControllerImpl) stop() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.velocity = 0
	cc.springAccel = 0
	cc.coasting = false
	cc.decay = nil
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) MouseDown(x float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.mouseEnabled {
		return
	}
	cc.press(x, false)
}

func (cc *cameraControllerImpl) MouseMove(x float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.mouseEnabled || cc.touchDrag {
		return
	}
	cc.move(x)
}

// MouseUp ends a mouse drag even when the gate closed mid-drag.
func (cc *cameraControllerImpl) MouseUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging || cc.touchDrag {
		return
	}
	cc.release()
}

func (cc *cameraControllerImpl) TouchStart(x float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.touchEnabled {
		return
	}
	cc.press(x, true)
}

func (cc *cameraControllerImpl) TouchMove(x float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.touchEnabled || !cc.touchDrag {
		return
	}
	cc.move(x)
}

func (cc *cameraControllerImpl) TouchEnd() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging || !cc.touchDrag {
		return
	}
	cc.release()
}

func (cc *cameraControllerImpl) Update(dt time.Duration) {
	cc.mu.Lock()
	v := cc.velocity
	if cc.coasting && cc.inertiaMode == InertiaSpring && dt > 0 {
		if dt != cc.springDT {
			cc.spring = harmonica.NewSpring(dt.Seconds(), cc.springFrequency, cc.springDamping)
			cc.springDT = dt
		}
		next, accel := cc.spring.Update(float64(cc.velocity), cc.springAccel, 0)
		cc.velocity, cc.springAccel = float32(next), accel
	}
	cc.mu.Unlock()

	cc.camera.AddYaw(v)
}

func (cc *cameraControllerImpl) Velocity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.velocity
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *cameraControllerImpl) MouseEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseEnabled
}

func (cc *cameraControllerImpl) SetMouseEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.mouseEnabled = enabled
	if !enabled && cc.dragging && !cc.touchDrag {
		cc.release()
	}
}

func (cc *cameraControllerImpl) TouchEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.touchEnabled
}

func (cc *cameraControllerImpl) SetTouchEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.touchEnabled = enabled
	if !enabled && cc.dragging && cc.touchDrag {
		cc.release()
	}
}

func (cc *cameraControllerImpl) DragScale() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragScale
}

func (cc *cameraControllerImpl) SetDragScale(scale float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragScale = scale
}

func (cc *cameraControllerImpl) InertiaDelay() time.Duration {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.inertiaDelay
}

func (cc *cameraControllerImpl) SetInertiaDelay(d time.Duration) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.inertiaDelay = d
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}
