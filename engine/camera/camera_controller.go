package camera

import (
	"fmt"
	"time"
)

// InertiaMode selects how drag velocity behaves after the pointer is released.
type InertiaMode int

const (
	// InertiaHold keeps the release velocity unchanged until the inertia delay elapses, then zeroes it.
	InertiaHold InertiaMode = iota
	// InertiaSpring eases the release velocity towards zero with a critically damped spring,
	// then zeroes it when the inertia delay elapses.
	InertiaSpring
)

// String returns the configuration name of the mode.
func (m InertiaMode) String() string {
	switch m {
	case InertiaHold:
		return "hold"
	case InertiaSpring:
		return "spring"
	default:
		return fmt.Sprintf("InertiaMode(%d)", int(m))
	}
}

// ParseInertiaMode converts a configuration name into an InertiaMode.
//
// Parameters:
//   - s: "hold" or "spring"
//
// Returns:
//   - InertiaMode: the parsed mode
//   - error: an error if the name is unknown
func ParseInertiaMode(s string) (InertiaMode, error) {
	switch s {
	case "hold", "":
		return InertiaHold, nil
	case "spring":
		return InertiaSpring, nil
	default:
		return InertiaHold, fmt.Errorf("unknown inertia mode %q", s)
	}
}

// CameraController turns horizontal pointer drags into camera yaw with inertia.
// Mouse and touch input are gated independently: a closed gate makes that source's
// press, move and release calls no-ops.
//
// A drag sets the yaw velocity to the pointer delta times the drag scale on every move.
// Update adds the velocity to the camera yaw once per tick. After release the velocity
// keeps going until the inertia delay elapses and is then set to exactly zero.
type CameraController interface {
	// MouseDown starts a mouse drag at x.
	//
	// Parameters:
	//   - x: pointer x in window pixels
	MouseDown(x float32)

	// MouseMove updates the drag velocity from the mouse movement to x.
	// Does nothing when no mouse drag has been started.
	//
	// Parameters:
	//   - x: pointer x in window pixels
	MouseMove(x float32)

	// MouseUp ends a mouse drag and schedules the inertia decay.
	// The drag ends even if the mouse gate closed after it started.
	MouseUp()

	// TouchStart starts a touch drag at x.
	//
	// Parameters:
	//   - x: touch x in window pixels
	TouchStart(x float32)

	// TouchMove updates the drag velocity from the touch movement to x.
	//
	// Parameters:
	//   - x: touch x in window pixels
	TouchMove(x float32)

	// TouchEnd ends a touch drag and schedules the inertia decay.
	// The drag ends even if the touch gate closed after it started.
	TouchEnd()

	// Update applies the current velocity to the camera yaw.
	// Called once per tick.
	//
	// Parameters:
	//   - dt: the tick duration, used only by the spring inertia mode
	Update(dt time.Duration)

	// Velocity returns the current yaw velocity in radians per tick.
	//
	// Returns:
	//   - float32: the velocity
	Velocity() float32

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true while a pointer is held down
	Dragging() bool

	// MouseEnabled reports whether the mouse gate is open.
	//
	// Returns:
	//   - bool: true if mouse input is accepted
	MouseEnabled() bool

	// SetMouseEnabled opens or closes the mouse gate. Closing it releases an active mouse drag.
	//
	// Parameters:
	//   - enabled: true to accept mouse input
	SetMouseEnabled(enabled bool)

	// TouchEnabled reports whether the touch gate is open.
	//
	// Returns:
	//   - bool: true if touch input is accepted
	TouchEnabled() bool

	// SetTouchEnabled opens or closes the touch gate. Closing it releases an active touch drag.
	//
	// Parameters:
	//   - enabled: true to accept touch input
	SetTouchEnabled(enabled bool)

	// DragScale returns the radians of yaw per pixel of pointer movement.
	//
	// Returns:
	//   - float32: the drag scale
	DragScale() float32

	// SetDragScale sets the radians of yaw per pixel of pointer movement.
	//
	// Parameters:
	//   - scale: the new drag scale
	SetDragScale(scale float32)

	// InertiaDelay returns how long the velocity survives after release.
	//
	// Returns:
	//   - time.Duration: the inertia delay
	InertiaDelay() time.Duration

	// SetInertiaDelay sets how long the velocity survives after release.
	// Applies to the next release.
	//
	// Parameters:
	//   - d: the new inertia delay
	SetInertiaDelay(d time.Duration)

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera
}
