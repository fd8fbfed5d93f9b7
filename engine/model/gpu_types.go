package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"
)

// GPUVertex is the GPU-aligned representation of a single blended mesh vertex.
// Matches the vertex buffer layout of the Phong pipeline (position at location 0, normal at location 1).
// Size: 24 bytes (tightly packed, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in mesh space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// GPUObjectData is the GPU-aligned per-object uniform: the mesh transforms followed by its material.
// Matches the WGSL ObjectData struct in the Phong shader.
// Size: 160 bytes (two mat4x4<f32> plus the 32-byte material block).
type GPUObjectData struct {
	Model    [16]float32          // offset   0: mesh-to-world transform (64 bytes)
	Normal   [16]float32          // offset  64: inverse-transpose of Model (64 bytes)
	Material material.GPUMaterial // offset 128: surface parameters (32 bytes)
}

// Size returns the size of the GPUObjectData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload.
func (g *GPUObjectData) Marshal() []byte {
	buf := make([]byte, 0, 160)
	for i := 0; i < 16; i++ {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Model[i]))
	}
	for i := 0; i < 16; i++ {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Normal[i]))
	}
	return append(buf, g.Material.Marshal()...)
}
