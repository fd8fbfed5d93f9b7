package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the camera block read by the Phong shader at group 0, binding 0.
// The vertex stage projects blended head vertices with ViewProj; the fragment stage uses
// CameraPosition for the Blinn-Phong half vector. Layout matches the WGSL struct, 80 bytes.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: projection * view, column-major, WebGPU depth [0, 1]
	CameraPosition [3]float32  // offset 64: orbit controller eye position in world space
	_              float32     // offset 76: vec3 tail padding
}

// Size returns the uniform size in bytes.
//
// Returns:
//   - int: 80
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the uniform little-endian for a queue buffer write. The padding word is left zero.
//
// Returns:
//   - []byte: the encoded uniform
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.CameraPosition {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
