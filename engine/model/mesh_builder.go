package model

import (
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithMeshName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithMeshName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the undeformed geometry of the Mesh.
// Normals may be left empty to have them generated.
//
// Parameters:
//   - geometry: base positions, normals and indices
//
// Returns:
//   - MeshBuilderOption: a function that applies the geometry option to a mesh
func WithGeometry(geometry Geometry) MeshBuilderOption {
	return func(m *mesh) {
		m.geometry = geometry
	}
}

// WithTargets is an option builder that sets the morph targets of the Mesh.
//
// Parameters:
//   - targets: the morph targets, ordered by influence index
//
// Returns:
//   - MeshBuilderOption: a function that applies the targets option to a mesh
func WithTargets(targets []MorphTarget) MeshBuilderOption {
	return func(m *mesh) {
		m.targets = targets
	}
}

// WithDictionary is an option builder that sets the morph dictionary mapping blendshape names to
// influence indices.
//
// Parameters:
//   - dictionary: the name to index table
//
// Returns:
//   - MeshBuilderOption: a function that applies the dictionary option to a mesh
func WithDictionary(dictionary map[string]int) MeshBuilderOption {
	return func(m *mesh) {
		m.dictionary = dictionary
	}
}

// WithInfluences is an option builder that sets the initial influence weights.
// Extra weights are dropped and missing weights start at zero.
//
// Parameters:
//   - influences: the initial weights
//
// Returns:
//   - MeshBuilderOption: a function that applies the influences option to a mesh
func WithInfluences(influences []float32) MeshBuilderOption {
	return func(m *mesh) {
		m.influences = influences
	}
}

// WithWorldMatrix is an option builder that sets the column-major mesh-to-world transform.
//
// Parameters:
//   - matrix: the world matrix
//
// Returns:
//   - MeshBuilderOption: a function that applies the world matrix option to a mesh
func WithWorldMatrix(matrix [16]float32) MeshBuilderOption {
	return func(m *mesh) {
		m.worldMatrix = mgl32.Mat4(matrix)
	}
}

// WithMaterial is an option builder that sets the surface material of the Mesh.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - MeshBuilderOption: a function that applies the material option to a mesh
func WithMaterial(mat material.Material) MeshBuilderOption {
	return func(m *mesh) {
		m.material = mat
	}
}
