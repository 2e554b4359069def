package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("mesh_opaque")
	assert.Equal(t, "mesh_opaque", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntry())
	assert.Equal(t, "fs_main", p.FragmentEntry())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.BlendState(), "no blend state unless blending is on")
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Nil(t, p.Pipeline())
}

func TestTransparentOptions(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 32, StepMode: wgpu.VertexStepModeVertex}
	p := NewPipeline("mesh_transparent",
		WithSource("@vertex fn main() {}"),
		WithEntryPoints("main", "frag"),
		WithVertexLayouts(layout),
		WithAlphaBlend(true),
		WithDepth(true, false),
		WithCullMode(wgpu.CullModeBack),
	)

	assert.Equal(t, "@vertex fn main() {}", p.Source())
	assert.Equal(t, "main", p.VertexEntry())
	assert.Equal(t, "frag", p.FragmentEntry())
	assert.Equal(t, []wgpu.VertexBufferLayout{layout}, p.VertexLayouts())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	if assert.NotNil(t, p.BlendState()) {
		assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
	}
}

func TestBlendStateOption(t *testing.T) {
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
	}
	p := NewPipeline("glow", WithBlendState(additive), WithPrimitive(wgpu.PrimitiveTopologyLineList, wgpu.FrontFaceCW))
	assert.True(t, p.BlendEnabled())
	assert.Same(t, additive, p.BlendState())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())

	p = NewPipeline("off", WithAlphaBlend(true), WithBlendState(nil))
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.BlendState())

	// the shared default is copied, never aliased
	p = NewPipeline("alpha", WithAlphaBlend(true))
	p.BlendState().Color.SrcFactor = wgpu.BlendFactorZero
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, AlphaBlend.Color.SrcFactor)
}
