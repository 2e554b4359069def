package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// Frame is a snapshot of everything needed to draw one frame. It is built under the scene's read lock
// and handed to RenderFrame, so the render goroutine never touches live scene state.
type Frame struct {
	// CameraProvider owns the camera uniform buffer and bind group (group 0).
	CameraProvider bind_group_provider.BindGroupProvider
	// Camera is the camera uniform for this frame.
	Camera camera.GPUCameraUniform

	// LightProvider owns the light uniform buffer and bind group (group 1).
	LightProvider bind_group_provider.BindGroupProvider
	// Light is the combined light uniform for this frame.
	Light light.GPULightUniform

	// Draws lists one entry per visible mesh.
	Draws []Draw
}

// Draw is a single mesh draw with its per-draw uniform already resolved.
type Draw struct {
	// Mesh supplies vertex data and holds the per-draw GPU resources on its MeshProvider.
	Mesh model.Mesh
	// Uniform is the mesh's world matrix and live material.
	Uniform model.GPUDrawUniform
	// Transparent selects the blended pipelines and the back-to-front pass.
	Transparent bool
	// DoubleSided disables back-face culling.
	DoubleSided bool
	// Depth is the squared distance from the camera, used to order transparent draws.
	Depth float32
}

// PipelineKeyFor returns the key of the mesh pipeline serving a draw with the given flags.
//
// Parameters:
//   - transparent: whether the draw is alpha blended
//   - doubleSided: whether back faces are drawn
//
// Returns:
//   - string: one of the four mesh pipeline keys
func PipelineKeyFor(transparent, doubleSided bool) string {
	switch {
	case transparent && doubleSided:
		return PipelineMeshBlendDoubleSided
	case transparent:
		return PipelineMeshBlend
	case doubleSided:
		return PipelineMeshOpaqueDoubleSided
	default:
		return PipelineMeshOpaque
	}
}

// SortDraws orders draws in place: opaque draws first in submission order, then transparent draws
// from farthest to nearest.
//
// Parameters:
//   - draws: the draws to order
func SortDraws(draws []Draw) {
	sort.SliceStable(draws, func(i, j int) bool {
		a, b := draws[i], draws[j]
		if a.Transparent != b.Transparent {
			return !a.Transparent
		}
		if !a.Transparent {
			return false
		}
		return a.Depth > b.Depth
	})
}
