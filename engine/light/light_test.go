package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	l := NewLight(LightTypeAmbient)
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.True(t, l.Enabled())
}

func TestRadiance(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithHexColor(0xffffff), WithIntensity(2))
	assert.Equal(t, [3]float32{2, 2, 2}, l.Radiance())

	l.SetEnabled(false)
	assert.Equal(t, [3]float32{}, l.Radiance())

	l.SetIntensity(-1)
	assert.Zero(t, l.Intensity())
}

func TestHexToRGB(t *testing.T) {
	c := HexToRGB(0xff8000)
	assert.Equal(t, float32(1), c[0])
	assert.InDelta(t, 0.502, c[1], 1e-3)
	assert.Zero(t, c[2])
}

func TestBuildLightUniformSumsAmbient(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(2)),
		NewLight(LightTypeAmbient, WithColor([3]float32{1, 0, 2}), WithIntensity(0.5)),
		NewLight(LightTypeAmbient, WithEnabled(false)),
		nil,
	}
	u := BuildLightUniform(lights, 0.25)
	assert.Equal(t, [3]float32{2.5, 2, 2.5}, u.Ambient, "color components clamp to 1")
	assert.Equal(t, [3]float32{0, 1, 0}, u.SkyDir)

	buf := u.Marshal()
	assert.Len(t, buf, u.Size())
	assert.Equal(t, float32(2.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
}
