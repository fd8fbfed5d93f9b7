package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a function that configures a shader during construction.
type ShaderBuilderOption func(*shader)

// WithSource is an option builder that sets the WGSL source code.
//
// Parameters:
//   - source: the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that applies the source option to a shader
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = source
	}
}

// WithEntryPoint is an option builder that overrides the entry point name.
// Vertex shaders default to "vs_main" and fragment shaders to "fs_main".
//
// Parameters:
//   - entryPoint: the WGSL function name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithBindGroupLayout is an option builder that declares the layout of one bind group used by the shader.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor
//
// Returns:
//   - ShaderBuilderOption: a function that applies the layout option to a shader
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayouts is an option builder that declares the vertex buffer layouts of a vertex shader.
//
// Parameters:
//   - layouts: the layouts in buffer slot order
//
// Returns:
//   - ShaderBuilderOption: a function that applies the vertex layout option to a shader
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}
