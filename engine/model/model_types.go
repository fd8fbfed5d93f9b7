package model

// MorphTarget is a named deformation of a mesh. Deltas are aligned with the mesh's base vertices
// and are added to them scaled by the target's influence weight.
type MorphTarget struct {
	// Name is the blendshape name, as found in the mesh's morph dictionary.
	Name string

	// PositionDeltas holds one position offset per base vertex.
	PositionDeltas [][3]float32

	// NormalDeltas holds one normal offset per base vertex, or is empty when the target
	// does not deform normals.
	NormalDeltas [][3]float32
}

// Geometry is the undeformed, triangle-list geometry of a mesh.
type Geometry struct {
	// Positions are the base vertex positions in mesh space.
	Positions [][3]float32

	// Normals are the base vertex normals, one per position.
	Normals [][3]float32

	// Indices are the triangle-list indices into Positions.
	Indices []uint32
}

// VertexCount returns the number of base vertices.
//
// Returns:
//   - int: the vertex count
func (g Geometry) VertexCount() int {
	return len(g.Positions)
}
