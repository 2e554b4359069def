package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the camera block bound at group 0.
// Size: 80 bytes.
//
// Layout:
//
//	mat4x4<f32> view_proj  (64 bytes, offset  0)
//	vec3<f32>   position   (12 bytes, offset 64)
//	f32         _pad       ( 4 bytes, offset 76)
type GPUCameraUniform struct {
	ViewProj [16]float32 // column-major projection * view
	Eye      [3]float32  // world-space camera position
	_pad     float32
}

// Size returns the uniform size in bytes (80).
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the uniform little-endian for upload.
//
// Returns:
//   - []byte: the 80-byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, v := range g.ViewProj {
		put(i*4, v)
	}
	for i, v := range g.Eye {
		put(64+i*4, v)
	}
	return buf
}
