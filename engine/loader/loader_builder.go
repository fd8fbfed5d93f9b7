package loader

import (
	"github.com/Carmen-Shannon/oxy-face/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithPhongMeshes is an option builder that names the meshes promoted to a Phong material
// with recomputed smooth normals after every load.
//
// Parameters:
//   - names: the mesh names
//
// Returns:
//   - LoaderBuilderOption: a function that applies the phong option to a loader
func WithPhongMeshes(names ...string) LoaderBuilderOption {
	return func(l *loader) {
		l.phongMeshes = names
	}
}

// WithTrackedMeshes is an option builder that names the meshes the viewer drives.
// The loader logs their morph targets after every load and warns about any the asset lacks.
//
// Parameters:
//   - names: the mesh names
//
// Returns:
//   - LoaderBuilderOption: a function that applies the tracked option to a loader
func WithTrackedMeshes(names ...string) LoaderBuilderOption {
	return func(l *loader) {
		l.trackedMeshes = names
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
