package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-face/engine/model"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load decodes the file at path and extracts its meshes.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []model.Mesh: the extracted meshes in scene order
	//   - error: error if loading fails
	Load(path string) ([]model.Mesh, error)

	// LoadReader decodes a stream and extracts its meshes.
	//
	// Parameters:
	//   - r: the reader providing model data
	//
	// Returns:
	//   - []model.Mesh: the extracted meshes in scene order
	//   - error: error if loading fails
	LoadReader(r io.Reader) ([]model.Mesh, error)
}
