package loader

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshData is the node-independent data extracted once per glTF mesh.
type gltfMeshData struct {
	geometry   model.Geometry
	targets    []model.MorphTarget
	dictionary map[string]int
	weights    []float32
	material   material.Material
}

// gltfMeshExtras is the subset of mesh extras read by the extractor.
type gltfMeshExtras struct {
	TargetNames []string `json:"targetNames"`
}

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc   *gltf.Document
	cache map[uint32]*gltfMeshData
}

// gltfMeshExtractor defines the interface for reading glTF meshes into model meshes.
type gltfMeshExtractor interface {
	// ExtractMesh builds a model mesh for one node instance of a glTF mesh.
	// Triangle primitives are merged into a single vertex array with rebased indices; their morph
	// targets are merged the same way so deltas stay aligned with the merged vertices.
	//
	// Parameters:
	//   - meshIndex: the glTF mesh index referenced by the node
	//   - name: the name given to the model mesh
	//   - world: the node's world matrix
	//
	// Returns:
	//   - model.Mesh: the extracted mesh
	//   - error: error if the index is out of range or accessor data cannot be read
	ExtractMesh(meshIndex uint32, name string, world mgl32.Mat4) (model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor reading from doc.
//
// Parameters:
//   - doc: the decoded document
//
// Returns:
//   - gltfMeshExtractor: the extractor
func newGLTFMeshExtractor(doc *gltf.Document) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		doc:   doc,
		cache: make(map[uint32]*gltfMeshData),
	}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex uint32, name string, world mgl32.Mat4) (model.Mesh, error) {
	data, ok := e.cache[meshIndex]
	if !ok {
		var err error
		data, err = e.extract(meshIndex)
		if err != nil {
			return nil, err
		}
		e.cache[meshIndex] = data
	}

	return model.NewMesh(
		model.WithMeshName(name),
		model.WithGeometry(data.geometry),
		model.WithTargets(data.targets),
		model.WithDictionary(data.dictionary),
		model.WithInfluences(data.weights),
		model.WithWorldMatrix(world),
		model.WithMaterial(data.material),
	), nil
}

func (e *gltfMeshExtractorImpl) extract(meshIndex uint32) (*gltfMeshData, error) {
	if int(meshIndex) >= len(e.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	src := e.doc.Meshes[meshIndex]

	targetCount := 0
	for _, prim := range src.Primitives {
		targetCount = max(targetCount, len(prim.Targets))
	}

	data := &gltfMeshData{
		targets: make([]model.MorphTarget, targetCount),
	}
	hasNormalDeltas := make([]bool, targetCount)

	for pi, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			log.Printf("[Loader] mesh %q primitive %d: skipping non-triangle primitive", src.Name, pi)
			continue
		}
		posIndex, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			log.Printf("[Loader] mesh %q primitive %d: skipping primitive without POSITION", src.Name, pi)
			continue
		}

		positions, err := e.readVec3(posIndex, modeler.ReadPosition)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d positions: %w", src.Name, pi, err)
		}

		indices, err := e.readIndices(prim, len(positions))
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d indices: %w", src.Name, pi, err)
		}

		var normals [][3]float32
		if nrmIndex, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = e.readVec3(nrmIndex, modeler.ReadNormal)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d normals: %w", src.Name, pi, err)
			}
		}
		if len(normals) != len(positions) {
			normals = model.GenerateNormals(positions, indices)
		}

		base := uint32(len(data.geometry.Positions))
		data.geometry.Positions = append(data.geometry.Positions, positions...)
		data.geometry.Normals = append(data.geometry.Normals, normals...)
		for _, idx := range indices {
			data.geometry.Indices = append(data.geometry.Indices, idx+base)
		}

		for t := range targetCount {
			posDeltas := make([][3]float32, len(positions))
			nrmDeltas := make([][3]float32, len(positions))
			if t < len(prim.Targets) {
				if idx, ok := prim.Targets[t][gltf.POSITION]; ok {
					read, err := e.readVec3(idx, modeler.ReadPosition)
					if err != nil {
						return nil, fmt.Errorf("mesh %q primitive %d target %d positions: %w", src.Name, pi, t, err)
					}
					copy(posDeltas, read)
				}
				if idx, ok := prim.Targets[t][gltf.NORMAL]; ok {
					read, err := e.readVec3(idx, modeler.ReadNormal)
					if err != nil {
						return nil, fmt.Errorf("mesh %q primitive %d target %d normals: %w", src.Name, pi, t, err)
					}
					copy(nrmDeltas, read)
					hasNormalDeltas[t] = true
				}
			}
			data.targets[t].PositionDeltas = append(data.targets[t].PositionDeltas, posDeltas...)
			data.targets[t].NormalDeltas = append(data.targets[t].NormalDeltas, nrmDeltas...)
		}

		if data.material == nil && prim.Material != nil {
			data.material = gltfExtractMaterial(e.doc, *prim.Material)
		}
	}

	for t := range data.targets {
		if !hasNormalDeltas[t] {
			data.targets[t].NormalDeltas = nil
		}
	}

	names := gltfTargetNames(src.Extras)
	if len(names) > 0 {
		data.dictionary = make(map[string]int, len(names))
		for i, name := range names {
			if _, dup := data.dictionary[name]; name != "" && !dup && i < targetCount {
				data.dictionary[name] = i
			}
		}
	}
	for t := range data.targets {
		data.targets[t].Name = fmt.Sprint(t)
		if t < len(names) && names[t] != "" {
			data.targets[t].Name = names[t]
		}
	}

	data.weights = append([]float32(nil), src.Weights...)

	if data.material == nil {
		data.material = material.NewMaterial(material.WithName(src.Name))
	}
	return data, nil
}

// readVec3 reads a VEC3 accessor with one of the modeler readers.
func (e *gltfMeshExtractorImpl) readVec3(index uint32, read func(*gltf.Document, *gltf.Accessor, [][3]float32) ([][3]float32, error)) ([][3]float32, error) {
	if int(index) >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return read(e.doc, e.doc.Accessors[index], nil)
}

// readIndices reads the primitive's index accessor, or generates a sequential list for non-indexed primitives.
func (e *gltfMeshExtractorImpl) readIndices(prim *gltf.Primitive, vertexCount int) ([]uint32, error) {
	if prim.Indices == nil {
		indices := make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
		return indices, nil
	}

	index := *prim.Indices
	if int(index) >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	indices, err := modeler.ReadIndices(e.doc, e.doc.Accessors[index], nil)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, vertexCount)
		}
	}
	return indices, nil
}

// gltfTargetNames reads the morph target names exporters store in mesh.extras.targetNames.
// Extras decode to arbitrary JSON values, so they are re-encoded and decoded into a typed struct.
func gltfTargetNames(extras any) []string {
	if extras == nil {
		return nil
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return nil
	}
	var parsed gltfMeshExtras
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	return parsed.TargetNames
}
