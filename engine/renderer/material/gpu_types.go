package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniform is the GPU-aligned material block of the per-draw uniform.
// Matches the WGSL Material struct in the renderer's mesh shader.
// Size: 32 bytes.
type GPUMaterialUniform struct {
	BaseColor   [4]float32 // offset  0: RGBA albedo (vec4<f32>)
	Opacity     float32    // offset 16: opacity multiplier
	AlphaCutoff float32    // offset 20: MASK threshold, 0 when alpha testing is off
	HasTexture  float32    // offset 24: 1 when a base color texture is bound
	_pad        float32    // offset 28: padding to 32 bytes
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Opacity))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.AlphaCutoff))
	binary.LittleEndian.PutUint32(buf[24:], math.Float32bits(g.HasTexture))
	binary.LittleEndian.PutUint32(buf[28:], 0)
	return buf
}
