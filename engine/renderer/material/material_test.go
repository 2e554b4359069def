package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/stretchr/testify/assert"
)

func TestCloneIsIndependent(t *testing.T) {
	def := NewMaterial(WithName("hull"), WithBaseColor([4]float32{1, 0, 0, 1}))
	live := def.Clone()

	live.SetOpacity(0.5)
	live.SetTransparent(true)

	assert.Equal(t, float32(1), def.Opacity())
	assert.False(t, def.Transparent())
	assert.Equal(t, float32(0.5), live.Opacity())
	assert.Equal(t, "hull", live.Name())
}

func TestResetRestoresDefault(t *testing.T) {
	def := NewMaterial(WithOpacity(0.9), WithTransparent(true))
	live := def.Clone()

	live.SetOpacity(0.5)
	live.SetTransparent(false)
	live.SetBaseColor([4]float32{0, 0, 0, 1})
	live.Reset(def)

	assert.Equal(t, float32(0.9), live.Opacity())
	assert.True(t, live.Transparent())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, live.BaseColor())
}

func TestResetWithOverridesInOneStep(t *testing.T) {
	def := NewMaterial(WithOpacity(0.9), WithTransparent(true), WithBaseColor([4]float32{0, 1, 0, 1}))
	live := def.Clone()
	live.SetBaseColor([4]float32{1, 0, 0, 1})

	live.ResetWith(def, 0.5, false)
	assert.Equal(t, float32(0.5), live.Opacity())
	assert.False(t, live.Transparent())
	assert.Equal(t, [4]float32{0, 1, 0, 1}, live.BaseColor())
	assert.Equal(t, float32(0.9), def.Opacity())

	live.ResetWith(def, 2, true)
	assert.Equal(t, float32(1), live.Opacity())
}

func TestOpacityIsClamped(t *testing.T) {
	m := NewMaterial()
	m.SetOpacity(3)
	assert.Equal(t, float32(1), m.Opacity())
	m.SetOpacity(-1)
	assert.Zero(t, m.Opacity())
}

func TestFromImported(t *testing.T) {
	blend := FromImported(common.ImportedMaterial{
		Name:      "glass",
		BaseColor: [4]float32{1, 1, 1, 0.3},
		AlphaMode: common.AlphaModeBlend,
	})
	assert.True(t, blend.Transparent())
	assert.Equal(t, common.AlphaModeBlend, blend.AlphaMode())

	plain := FromImported(common.ImportedMaterial{Name: "paint"})
	assert.False(t, plain.Transparent())
	assert.Equal(t, common.AlphaModeOpaque, plain.AlphaMode())
}

func TestUniformMarshal(t *testing.T) {
	m := NewMaterial(
		WithBaseColor([4]float32{0.1, 0.2, 0.3, 1}),
		WithOpacity(0.5),
		WithAlphaMode(common.AlphaModeMask, 0.25),
		WithBaseColorTexture(&common.ImportedTexture{Name: "albedo"}),
	)
	u := m.Uniform()
	buf := u.Marshal()

	assert.Len(t, buf, 32)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
}
