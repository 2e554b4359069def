package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a Pipeline inside NewPipeline.
type PipelineBuilderOption func(*pipeline)

// AlphaBlend is straight (non-premultiplied) alpha blending, the state used by WithAlphaBlend.
var AlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// WithSource sets the WGSL module holding both entry points.
//
// Parameters:
//   - source: the WGSL source
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithSource(source string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.source = source
	}
}

// WithEntryPoints renames the vertex and fragment entry points (default vs_main and fs_main).
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntry, p.fragmentEntry = vertex, fragment
	}
}

// WithVertexLayouts sets one layout per vertex buffer bound at draw time.
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithDepth sets depth testing and depth writes. Both default to on.
//
// Parameters:
//   - test: compare fragments against the depth attachment
//   - write: store the depth of fragments that pass
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled, p.depthWriteEnabled = test, write
	}
}

// WithAlphaBlend turns AlphaBlend on or off.
func WithAlphaBlend(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		state := AlphaBlend
		p.blendEnabled, p.blendState = enabled, &state
	}
}

// WithBlendState enables blending with a custom state. A nil state disables blending.
//
// Parameters:
//   - state: the color and alpha blend components
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled, p.blendState = state != nil, state
	}
}

// WithCullMode sets which faces are discarded. Default wgpu.CullModeNone.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithPrimitive sets the topology and winding. Defaults are triangle lists wound counter-clockwise.
//
// Parameters:
//   - topology: how vertices assemble into primitives
//   - frontFace: the winding that counts as front facing
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithPrimitive(topology wgpu.PrimitiveTopology, frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology, p.frontFace = topology, frontFace
	}
}

// WithWriteMask limits which color channels are written. Default wgpu.ColorWriteMaskAll.
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}
