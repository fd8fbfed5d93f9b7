package model

import (
	"math"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu *sync.Mutex

	name        string
	geometry    Geometry
	targets     []MorphTarget
	dictionary  map[string]int
	influences  []float32
	worldMatrix mgl32.Mat4
	material    material.Material
	dirty       bool
}

// Mesh is a named sub-mesh of a loaded asset whose morph-target influences can be driven by name.
//
// Mesh is safe for concurrent use: the playback driver writes influences from the render loop while
// the scene blends vertices on its worker pool.
type Mesh interface {
	// Name retrieves the mesh identifier used by lookups.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// MorphIndex looks up a morph target by name in the morph dictionary.
	//
	// Parameters:
	//   - name: the blendshape name
	//
	// Returns:
	//   - int: the influence index
	//   - bool: false if the mesh has no morph target of that name
	MorphIndex(name string) (int, bool)

	// MorphNames returns the morph target names ordered by influence index.
	//
	// Returns:
	//   - []string: the names, one per morph target
	MorphNames() []string

	// SetInfluence sets the weight of the morph target at index. Out-of-range indices are ignored.
	// The mesh is marked dirty when the weight changes.
	//
	// Parameters:
	//   - index: the influence index
	//   - weight: the new weight
	SetInfluence(index int, weight float32)

	// Influences returns a copy of the current influence weights.
	//
	// Returns:
	//   - []float32: one weight per morph target
	Influences() []float32

	// ResetInfluences sets every influence weight to zero.
	ResetInfluences()

	// Geometry returns the undeformed geometry.
	//
	// Returns:
	//   - Geometry: base positions, normals and indices
	Geometry() Geometry

	// Targets returns the morph targets, ordered by influence index.
	//
	// Returns:
	//   - []MorphTarget: the morph targets
	Targets() []MorphTarget

	// WorldMatrix returns the column-major mesh-to-world transform.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// Material returns the surface material.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// SetMaterial replaces the surface material and marks the mesh dirty.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)

	// RecomputeNormals replaces the base normals with smooth normals generated from the base positions.
	RecomputeNormals()

	// Dirty reports whether influences or material changed since the last Blend.
	//
	// Returns:
	//   - bool: true if the GPU copy is stale
	Dirty() bool

	// Blend writes the deformed vertices into dst, growing it when needed, and clears the dirty flag.
	// Positions are base + sum(w_i * delta_i); normals are blended the same way and renormalized.
	//
	// Parameters:
	//   - dst: the destination slice to reuse, may be nil
	//
	// Returns:
	//   - []GPUVertex: the blended vertices, one per base vertex
	Blend(dst []GPUVertex) []GPUVertex

	// ObjectData builds the per-object GPU uniform from the world matrix and material.
	//
	// Returns:
	//   - GPUObjectData: the uniform data
	ObjectData() GPUObjectData
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with the specified options applied.
// Missing normals are generated from the positions, a missing dictionary falls back to the decimal
// index of each morph target, and missing influences start at zero.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{
		mu:          &sync.Mutex{},
		worldMatrix: mgl32.Ident4(),
		dirty:       true,
	}
	for _, opt := range options {
		opt(m)
	}

	if len(m.geometry.Normals) != len(m.geometry.Positions) {
		m.geometry.Normals = GenerateNormals(m.geometry.Positions, m.geometry.Indices)
	}
	if m.dictionary == nil {
		m.dictionary = IndexDictionary(len(m.targets))
	}
	influences := make([]float32, len(m.targets))
	copy(influences, m.influences)
	m.influences = influences
	if m.material == nil {
		m.material = material.NewMaterial(material.WithName(m.name))
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) MorphIndex(name string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.dictionary[name]
	if !ok || i < 0 || i >= len(m.influences) {
		return 0, false
	}
	return i, true
}

func (m *mesh) MorphNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.influences))
	for name, i := range m.dictionary {
		if i >= 0 && i < len(names) {
			names[i] = name
		}
	}
	return names
}

func (m *mesh) SetInfluence(index int, weight float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.influences) {
		return
	}
	if m.influences[index] != weight {
		m.influences[index] = weight
		m.dirty = true
	}
}

func (m *mesh) Influences() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float32, len(m.influences))
	copy(out, m.influences)
	return out
}

func (m *mesh) ResetInfluences() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.influences {
		m.influences[i] = 0
	}
	m.dirty = true
}

func (m *mesh) Geometry() Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geometry
}

func (m *mesh) Targets() []MorphTarget {
	return m.targets
}

func (m *mesh) WorldMatrix() [16]float32 {
	return m.worldMatrix
}

func (m *mesh) Material() material.Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.material
}

func (m *mesh) SetMaterial(mat material.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.material = mat
	m.dirty = true
}

func (m *mesh) RecomputeNormals() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.geometry.Normals = GenerateNormals(m.geometry.Positions, m.geometry.Indices)
	m.dirty = true
}

func (m *mesh) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

func (m *mesh) Blend(dst []GPUVertex) []GPUVertex {
	m.mu.Lock()
	weights := make([]float32, len(m.influences))
	copy(weights, m.influences)
	normals := m.geometry.Normals
	m.dirty = false
	m.mu.Unlock()

	n := len(m.geometry.Positions)
	if cap(dst) < n {
		dst = make([]GPUVertex, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = GPUVertex{Position: m.geometry.Positions[i], Normal: normals[i]}
	}

	for t, w := range weights {
		if w == 0 {
			continue
		}
		target := m.targets[t]
		for i, d := range target.PositionDeltas {
			if i >= n {
				break
			}
			dst[i].Position[0] += w * d[0]
			dst[i].Position[1] += w * d[1]
			dst[i].Position[2] += w * d[2]
		}
		for i, d := range target.NormalDeltas {
			if i >= n {
				break
			}
			dst[i].Normal[0] += w * d[0]
			dst[i].Normal[1] += w * d[1]
			dst[i].Normal[2] += w * d[2]
		}
	}

	for i := range dst {
		dst[i].Normal = normalize(dst[i].Normal)
	}
	return dst
}

func (m *mesh) ObjectData() GPUObjectData {
	normal := m.worldMatrix.Mat3().Inv().Transpose().Mat4()
	return GPUObjectData{
		Model:    m.worldMatrix,
		Normal:   normal,
		Material: m.Material().Uniform(),
	}
}

// IndexDictionary builds the fallback morph dictionary mapping "0", "1", ... to their index.
//
// Parameters:
//   - count: the number of morph targets
//
// Returns:
//   - map[string]int: the dictionary
func IndexDictionary(count int) map[string]int {
	dict := make(map[string]int, count)
	for i := 0; i < count; i++ {
		dict[strconv.Itoa(i)] = i
	}
	return dict
}

// GenerateNormals computes smooth per-vertex normals by accumulating area-weighted face normals
// over every triangle that shares the vertex. Vertices not referenced by any triangle get +Y.
//
// Parameters:
//   - positions: the vertex positions
//   - indices: the triangle-list indices, or nil for non-indexed geometry
//
// Returns:
//   - [][3]float32: one unit normal per position
func GenerateNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	tri := func(a, b, c int) {
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return
		}
		pa, pb, pc := mgl32.Vec3(positions[a]), mgl32.Vec3(positions[b]), mgl32.Vec3(positions[c])
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		for _, i := range [3]int{a, b, c} {
			normals[i] = [3]float32(mgl32.Vec3(normals[i]).Add(face))
		}
	}

	if len(indices) > 0 {
		for i := 0; i+2 < len(indices); i += 3 {
			tri(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			tri(i, i+1, i+2)
		}
	}

	for i := range normals {
		normals[i] = normalize(normals[i])
	}
	return normals
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-12 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
