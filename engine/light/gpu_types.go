package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned light rig bound at group 1.
// Colors are premultiplied by intensity; a disabled light marshals as black.
// Size: 80 bytes (WGSL uniform aligned).
//
// Layout:
//
//	vec3<f32> ambient            (offset  0)
//	vec3<f32> direction          (offset 16)
//	vec3<f32> directional_color  (offset 32)
//	vec3<f32> point_position     (offset 48)
//	f32       point_range        (offset 60)
//	vec3<f32> point_color        (offset 64)
type GPULightUniform struct {
	Ambient          [3]float32
	_pad0            float32
	Direction        [3]float32 // normalized, pointing from the surface toward the light
	_pad1            float32
	DirectionalColor [3]float32
	_pad2            float32
	PointPosition    [3]float32
	PointRange       float32 // 0 disables attenuation
	PointColor       [3]float32
	_pad3            float32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (u *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (u *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putVec3(buf[0:], u.Ambient)
	putVec3(buf[16:], u.Direction)
	putVec3(buf[32:], u.DirectionalColor)
	putVec3(buf[48:], u.PointPosition)
	binary.LittleEndian.PutUint32(buf[60:64], math.Float32bits(u.PointRange))
	putVec3(buf[64:], u.PointColor)
	return buf
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
