package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterial is the GPU-aligned material block appended to the per-object uniform.
// Matches the WGSL Material struct in the Phong shader.
// Size: 32 bytes (std140 aligned, no padding required).
type GPUMaterial struct {
	BaseColor [4]float32 // offset  0: diffuse RGBA (16 bytes)
	Specular  [3]float32 // offset 16: specular RGB (12 bytes)
	Shininess float32    // offset 28: specular exponent (4 bytes)
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
	}
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Specular[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Shininess))
	return buf
}
