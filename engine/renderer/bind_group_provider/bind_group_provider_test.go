package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider("mesh_tech")
	assert.Equal(t, "mesh_tech", p.Label())
	assert.False(t, p.Initialized())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.Sampler(2))
	assert.Nil(t, p.VertexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestReleaseResetsNilEntries(t *testing.T) {
	p := NewBindGroupProvider("camera")
	p.SetBuffer(0, nil)
	p.SetTexture(1, nil, nil)
	p.SetSampler(2, nil)
	p.SetIndexBuffer(nil, 36)
	assert.Equal(t, 36, p.IndexCount())

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
	assert.False(t, p.Initialized())
	assert.NotPanics(t, p.Release, "release twice")
}
