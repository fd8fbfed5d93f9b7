package pipeline

import (
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment stages.
//
// Parameters:
//   - vertex: the vertex shader
//   - fragment: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vertex, fragment shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vertex
		p.fragmentShader = fragment
	}
}

// WithDepth sets the depth test and depth write state.
//
// Parameters:
//   - test: whether fragments are depth tested
//   - write: whether fragments write depth
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithBlendEnabled turns straight-alpha blending on or off.
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithDoubleSided disables back-face culling so both sides of a surface are shaded.
// Thin geometry such as eyelashes or the inside of the mouth needs it.
func WithDoubleSided() PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = wgpu.CullModeNone
	}
}

// WithRasterState overrides the primitive assembly state.
//
// Parameters:
//   - topology: the primitive topology
//   - frontFace: the winding order of front faces
//   - cullMode: which faces are discarded
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithRasterState(topology wgpu.PrimitiveTopology, frontFace wgpu.FrontFace, cullMode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
		p.frontFace = frontFace
		p.cullMode = cullMode
	}
}
