package scene

// SceneBuilderOption is a functional option for configuring a Scene.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the engine draws the scene.
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithComputeWorkers sets the number of worker goroutines that blend meshes in PrepareFrame.
// Defaults to runtime.NumCPU()-1. Heads with few sub-meshes gain little from more workers.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithDoubleSided shades both sides of every mesh instead of culling back faces.
//
// Parameters:
//   - enabled: whether back faces are drawn
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDoubleSided(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.doubleSided = enabled
	}
}
