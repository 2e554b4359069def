package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/mesh.wgsl
var meshShaderSource string

// Keys of the built-in mesh pipelines.
const (
	PipelineMeshOpaque            = "mesh_opaque"
	PipelineMeshOpaqueDoubleSided = "mesh_opaque_double_sided"
	PipelineMeshBlend             = "mesh_blend"
	PipelineMeshBlendDoubleSided  = "mesh_blend_double_sided"
)

// Bind group indices used by the mesh shader.
const (
	GroupCamera = 0
	GroupLight  = 1
	GroupDraw   = 2
)

// Bindings inside the per-draw group.
const (
	BindingDrawUniform = 0
	BindingBaseColor   = 1
	BindingSampler     = 2
)

// MeshVertexLayout describes model.GPUVertex to the vertex stage: position, normal and uv.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func MeshVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: model.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// BindGroupLayouts returns the layout descriptors for groups 0 to 2, indexed by group.
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: camera, light and draw layouts
func BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	var cam camera.GPUCameraUniform
	var lit light.GPULightUniform
	var draw model.GPUDrawUniform

	return []wgpu.BindGroupLayoutDescriptor{
		GroupCamera: {
			Label: "Camera Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uint64(cam.Size())),
			},
		},
		GroupLight: {
			Label: "Light Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageFragment, uint64(lit.Size())),
			},
		},
		GroupDraw: {
			Label: "Draw Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(BindingDrawUniform, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uint64(draw.Size())),
				{
					Binding:    BindingBaseColor,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    BindingSampler,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		},
	}
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

// DefaultPipelines builds the four mesh pipelines: opaque and blended, each single and double sided.
// Blended pipelines test depth but do not write it.
//
// Returns:
//   - []pipeline.Pipeline: the mesh pipelines, unregistered
func DefaultPipelines() []pipeline.Pipeline {
	build := func(key string, transparent, doubleSided bool) pipeline.Pipeline {
		cull := wgpu.CullModeBack
		if doubleSided {
			cull = wgpu.CullModeNone
		}
		return pipeline.NewPipeline(key,
			pipeline.WithSource(meshShaderSource),
			pipeline.WithVertexLayouts(MeshVertexLayout()),
			pipeline.WithCullMode(cull),
			pipeline.WithAlphaBlend(transparent),
			pipeline.WithDepth(true, !transparent),
		)
	}
	return []pipeline.Pipeline{
		build(PipelineMeshOpaque, false, false),
		build(PipelineMeshOpaqueDoubleSided, false, true),
		build(PipelineMeshBlend, true, false),
		build(PipelineMeshBlendDoubleSided, true, true),
	}
}
