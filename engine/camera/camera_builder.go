package camera

import "github.com/chewxy/math32"

// CameraBuilderOption configures a camera inside NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPose places the camera.
//
// Parameters:
//   - position: world-space position
//   - rotation: Euler angles in radians, applied X then Y then Z
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPose(position, rotation [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position, c.rotation = position, rotation
	}
}

// WithPerspective sets the projection. Values out of range (fov outside (0, 180), near <= 0 or far <= near)
// keep the defaults of 75 degrees, 0.1 and 1000.
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPerspective(fovDegrees, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if fovDegrees > 0 && fovDegrees < 180 {
			c.fov = fovDegrees * math32.Pi / 180
		}
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithAspect sets width / height of the viewport.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithViewport derives the aspect ratio from a viewport size in pixels. A zero dimension is ignored.
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.aspect = float32(width) / float32(height)
		}
	}
}
