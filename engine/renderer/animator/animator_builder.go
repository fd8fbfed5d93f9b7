package animator

import (
	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/bind_group_provider"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithProvider is an option builder that supplies the BindGroupProvider used for the mesh buffers
// and object uniform instead of creating one.
//
// Parameters:
//   - p: the provider to use
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the provider option to an animator
func WithProvider(p bind_group_provider.BindGroupProvider) AnimatorBuilderOption {
	return func(a *animator) {
		a.provider = p
	}
}

// WithVertexCapacity is an option builder that pre-allocates the reusable vertex slice.
//
// Parameters:
//   - n: the number of vertices to reserve
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the capacity option to an animator
func WithVertexCapacity(n int) AnimatorBuilderOption {
	return func(a *animator) {
		if n > 0 {
			a.vertices = make([]model.GPUVertex, 0, n)
		}
	}
}
