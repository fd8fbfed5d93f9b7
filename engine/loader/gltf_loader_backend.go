package loader

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-face/engine/model"

	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// Decoding is delegated to github.com/qmuntal/gltf and extraction to the gltfImporter.
type gltfLoaderBackend interface {
	loaderBackend

	// LoadDocument extracts the meshes of an already decoded document.
	//
	// Parameters:
	//   - doc: the decoded document
	//
	// Returns:
	//   - []model.Mesh: the extracted meshes in scene order
	//   - error: error if accessor data cannot be read
	LoadDocument(doc *gltf.Document) ([]model.Mesh, error)
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) ([]model.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	return b.importer.Import(doc)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader) ([]model.Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	return b.importer.Import(doc)
}

func (b *gltfLoaderBackendImpl) LoadDocument(doc *gltf.Document) ([]model.Mesh, error) {
	return b.importer.Import(doc)
}
