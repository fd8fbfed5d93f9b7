package loader

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"

	"github.com/qmuntal/gltf"
)

// ErrUnsupportedFormat is returned when a model path does not end in .gltf or .glb.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	phongMeshes   []string
	trackedMeshes []string

	modelCache map[string]model.Model

	backend gltfLoaderBackend
}

// Loader defines the public-facing interface for loading and caching glTF assets.
// It produces a model.Model with one named Mesh per scene node that references a glTF mesh,
// promotes the configured meshes to Phong materials and reports tracked meshes the asset lacks.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned with its
	// influences reset to zero.
	//
	// Parameters:
	//   - path: the file path to the .gltf or .glb file
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: ErrUnsupportedFormat for other extensions, or a wrapped decode error
	Load(path string) (model.Model, error)

	// Reload imports a model file, bypassing and replacing any cached copy.
	//
	// Parameters:
	//   - path: the file path to the .gltf or .glb file
	//
	// Returns:
	//   - model.Model: the freshly loaded model
	//   - error: error if loading fails
	Reload(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	// Both glTF JSON and GLB binary streams are accepted; external buffers are not resolved.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// LoadDocument builds a model from an already decoded glTF document and caches it by name.
	//
	// Parameters:
	//   - name: the cache key for the model
	//   - doc: the decoded document
	//
	// Returns:
	//   - model.Model: the built model
	//   - error: error if accessor data cannot be read
	LoadDocument(name string, doc *gltf.Document) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new glTF Loader with the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		backend:    newGLTFLoaderBackend(),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	cached, ok := l.modelCache[path]
	l.mu.RUnlock()
	if ok {
		for _, m := range cached.Meshes() {
			m.ResetInfluences()
		}
		log.Printf("[Loader] using cached model %s", path)
		return cached, nil
	}
	return l.Reload(path)
}

func (l *loader) Reload(path string) (model.Model, error) {
	if err := checkFormat(path); err != nil {
		return nil, err
	}

	meshes, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, path, meshes), nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	meshes, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, "", meshes), nil
}

func (l *loader) LoadDocument(name string, doc *gltf.Document) (model.Model, error) {
	meshes, err := l.backend.LoadDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build model %q: %w", name, err)
	}
	return l.store(name, "", meshes), nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// store applies the Phong promotion, reports missing tracked meshes and caches the model under key.
func (l *loader) store(key, source string, meshes []model.Mesh) model.Model {
	mdl := model.NewModel(
		model.WithName(modelName(key)),
		model.WithSource(source),
		model.WithMeshes(meshes...),
	)

	for _, name := range l.phongMeshes {
		mesh, ok := mdl.Mesh(name)
		if !ok {
			log.Printf("[Loader] phong mesh %q not found in %s", name, key)
			continue
		}
		mesh.SetMaterial(material.NewPhongMaterial(mesh.Material()))
		mesh.RecomputeNormals()
	}

	found := 0
	for _, name := range l.trackedMeshes {
		mesh, ok := mdl.Mesh(name)
		if !ok {
			log.Printf("[Loader] tracked mesh %q not found in %s", name, key)
			continue
		}
		found++
		log.Printf("[Loader] %s morph targets: %v", name, mesh.MorphNames())
	}
	if len(l.trackedMeshes) > 0 && found == len(l.trackedMeshes) {
		log.Printf("[Loader] all %d tracked meshes loaded", found)
	}

	log.Printf("[Loader] loaded %s: %d meshes, %d vertices", key, len(mdl.Meshes()), mdl.VertexCount())

	l.mu.Lock()
	l.modelCache[key] = mdl
	l.mu.Unlock()
	return mdl
}

// checkFormat rejects paths the glTF backend cannot decode.
func checkFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// modelName derives a display name from a path or cache key.
func modelName(key string) string {
	base := filepath.Base(key)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
