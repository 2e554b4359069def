package camera

import "time"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithDragScale sets the radians of yaw per pixel of pointer movement.
//
// Parameters:
//   - scale: the drag scale (default 0.001)
//
// Returns:
//   - CameraControllerOption: functional option to set the drag scale
func WithDragScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.dragScale = scale
	}
}

// WithInertiaDelay sets how long the velocity survives after the pointer is released.
//
// Parameters:
//   - d: the delay (default 600ms)
//
// Returns:
//   - CameraControllerOption: functional option to set the inertia delay
func WithInertiaDelay(d time.Duration) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.inertiaDelay = d
	}
}

// WithInertiaMode selects how the velocity behaves between release and the inertia delay.
//
// Parameters:
//   - mode: InertiaHold (default) or InertiaSpring
//
// Returns:
//   - CameraControllerOption: functional option to set the inertia mode
func WithInertiaMode(mode InertiaMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.inertiaMode = mode
	}
}

// WithSpring sets the spring parameters used by InertiaSpring.
//
// Parameters:
//   - frequency: angular frequency of the spring (default 4.0)
//   - damping: damping ratio; 1.0 is critically damped (default 1.0)
//
// Returns:
//   - CameraControllerOption: functional option to set the spring parameters
func WithSpring(frequency, damping float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.springFrequency = frequency
		cc.springDamping = damping
	}
}

// WithMouseEnabled sets the initial state of the mouse gate.
//
// Parameters:
//   - enabled: true to accept mouse input
//
// Returns:
//   - CameraControllerOption: functional option to set the mouse gate
func WithMouseEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseEnabled = enabled
	}
}

// WithTouchEnabled sets the initial state of the touch gate.
//
// Parameters:
//   - enabled: true to accept touch input
//
// Returns:
//   - CameraControllerOption: functional option to set the touch gate
func WithTouchEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.touchEnabled = enabled
	}
}
