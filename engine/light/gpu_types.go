package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned light block bound at group 1.
// Size: 32 bytes (two vec4 slots, WGSL uniform aligned).
//
// Layout:
//
//	vec3<f32> ambient     (12 bytes, offset  0)
//	f32       hemisphere  ( 4 bytes, offset 12)
//	vec3<f32> sky_dir     (12 bytes, offset 16)
//	f32       _pad        ( 4 bytes, offset 28)
type GPULightUniform struct {
	Ambient    [3]float32 // summed radiance of every enabled ambient light
	Hemisphere float32    // weight of the normal-facing term, 0 for flat ambient
	SkyDir     [3]float32 // world-space up for the hemisphere term
	_pad       float32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (u *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (u *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.Ambient[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(u.SkyDir[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(u.Hemisphere))
	return buf
}

// BuildLightUniform folds a scene's lights into the uniform. Disabled lights contribute nothing.
//
// Parameters:
//   - lights: the scene's lights
//   - hemisphere: weight of the sky/ground shading term
//
// Returns:
//   - GPULightUniform: the uniform ready to marshal
func BuildLightUniform(lights []Light, hemisphere float32) GPULightUniform {
	u := GPULightUniform{
		Hemisphere: hemisphere,
		SkyDir:     [3]float32{0, 1, 0},
	}
	for _, l := range lights {
		if l == nil || l.Type() != LightTypeAmbient {
			continue
		}
		r := l.Radiance()
		u.Ambient[0] += r[0]
		u.Ambient[1] += r[1]
		u.Ambient[2] += r[2]
	}
	return u
}
