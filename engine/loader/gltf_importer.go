package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-face/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for turning a decoded glTF document into meshes.
// It walks the active scene, composes node world matrices and hands every mesh-bearing node to
// the mesh extractor.
type gltfImporter interface {
	// Import extracts one mesh per scene node that references a glTF mesh.
	//
	// Parameters:
	//   - doc: the decoded document
	//
	// Returns:
	//   - []model.Mesh: the meshes in depth-first scene order
	//   - error: error if accessor data cannot be read
	Import(doc *gltf.Document) ([]model.Mesh, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(doc *gltf.Document) ([]model.Mesh, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}

	extractor := newGLTFMeshExtractor(doc)
	visited := make([]bool, len(doc.Nodes))
	var meshes []model.Mesh

	var walk func(index uint32, parent mgl32.Mat4) error
	walk = func(index uint32, parent mgl32.Mat4) error {
		if int(index) >= len(doc.Nodes) || visited[index] {
			return nil
		}
		visited[index] = true

		node := doc.Nodes[index]
		world := parent.Mul4(gltfLocalMatrix(node))

		if node.Mesh != nil {
			mesh, err := extractor.ExtractMesh(*node.Mesh, gltfNodeName(doc, index), world)
			if err != nil {
				return fmt.Errorf("node %d: %w", index, err)
			}
			meshes = append(meshes, mesh)
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range gltfSceneRoots(doc) {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

// gltfSceneRoots returns the root nodes of the default scene, the first scene when no default is
// set, or every parentless node when the document declares no scenes.
func gltfSceneRoots(doc *gltf.Document) []uint32 {
	if len(doc.Scenes) > 0 {
		scene := uint32(0)
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			if int(child) < len(isChild) {
				isChild[child] = true
			}
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// gltfLocalMatrix returns the node transform relative to its parent. An explicit matrix wins over
// translation, rotation and scale.
func gltfLocalMatrix(node *gltf.Node) mgl32.Mat4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return mgl32.Mat4(m)
	}

	t := node.Translation
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	rotation := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Normalize()

	return mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// gltfNodeName names a mesh after its node, falling back to the glTF mesh name and then the node index.
func gltfNodeName(doc *gltf.Document, index uint32) string {
	node := doc.Nodes[index]
	if node.Name != "" {
		return node.Name
	}
	if node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) && doc.Meshes[*node.Mesh].Name != "" {
		return doc.Meshes[*node.Mesh].Name
	}
	return fmt.Sprintf("node_%d", index)
}
