package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/phong.wgsl
var phongSource string

// Bind group indices used by the Phong shader.
const (
	GroupCamera = 0
	GroupLights = 1
	GroupObject = 2
)

// Uniform block sizes, in bytes, expected by each Phong bind group.
const (
	CameraUniformSize = 80
	LightsUniformSize = 80
	ObjectUniformSize = 160
)

// VertexStride is the size of one interleaved position and normal vertex.
const VertexStride = 24

// PhongSource returns the embedded Blinn-Phong WGSL source.
//
// Returns:
//   - string: the WGSL source
func PhongSource() string {
	return phongSource
}

// PhongBindGroupLayout returns the layout of a Phong bind group. Every group holds a single
// uniform buffer at binding 0 that both stages read.
//
// Parameters:
//   - group: GroupCamera, GroupLights or GroupObject
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor for an unknown group
func PhongBindGroupLayout(group int) wgpu.BindGroupLayoutDescriptor {
	var label string
	var size uint64
	switch group {
	case GroupCamera:
		label, size = "phong_camera", CameraUniformSize
	case GroupLights:
		label, size = "phong_lights", LightsUniformSize
	case GroupObject:
		label, size = "phong_object", ObjectUniformSize
	default:
		return wgpu.BindGroupLayoutDescriptor{}
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	}
}

// PhongVertexLayout returns the interleaved position (location 0) and normal (location 1) layout.
//
// Returns:
//   - wgpu.VertexBufferLayout: the vertex buffer layout
func PhongVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// PhongVertexShader builds the vertex stage of the Phong pipeline.
//
// Returns:
//   - Shader: the vertex shader
func PhongVertexShader() Shader {
	return NewShader("phong_vert", ShaderTypeVertex,
		WithSource(phongSource),
		WithBindGroupLayout(GroupCamera, PhongBindGroupLayout(GroupCamera)),
		WithBindGroupLayout(GroupObject, PhongBindGroupLayout(GroupObject)),
		WithVertexLayouts(PhongVertexLayout()),
	)
}

// PhongFragmentShader builds the fragment stage of the Phong pipeline.
//
// Returns:
//   - Shader: the fragment shader
func PhongFragmentShader() Shader {
	return NewShader("phong_frag", ShaderTypeFragment,
		WithSource(phongSource),
		WithBindGroupLayout(GroupCamera, PhongBindGroupLayout(GroupCamera)),
		WithBindGroupLayout(GroupLights, PhongBindGroupLayout(GroupLights)),
		WithBindGroupLayout(GroupObject, PhongBindGroupLayout(GroupObject)),
	)
}
