package scene

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRenderer attaches the renderer that Render draws with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithHemisphere sets the weight of the normal-facing shading term. 0 gives flat ambient light.
// Default is 0.5.
//
// Parameters:
//   - weight: the hemisphere weight in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHemisphere(weight float32) SceneBuilderOption {
	return func(s *scene) {
		s.hemisphere = weight
	}
}

// WithFrustumCulling skips meshes whose world bounds fall outside the camera frustum when building Frames.
// Off by default.
//
// Parameters:
//   - enabled: true to cull
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrustumCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.frustumCulling = enabled
	}
}

// WithUpdateWorkers sets the number of worker goroutines that advance object animations in Update.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}
