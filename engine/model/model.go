package model

// model is the implementation of the Model interface.
type model struct {
	name   string
	source string
	meshes []Mesh
	byName map[string]Mesh
}

// Model defines the interface for a loaded asset.
// A Model is an ordered collection of named meshes produced by the Loader. Mesh names are unique;
// when the asset repeats a name, the first mesh keeps it.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Source retrieves the path the model was loaded from, or an empty string.
	//
	// Returns:
	//   - string: the source path
	Source() string

	// Meshes retrieves every mesh in load order.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// Mesh looks up a mesh by name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - Mesh: the mesh, or nil
	//   - bool: false if no mesh has that name
	Mesh(name string) (Mesh, bool)

	// MeshNames returns the names of every mesh in load order.
	//
	// Returns:
	//   - []string: the mesh names
	MeshNames() []string

	// VertexCount returns the total number of base vertices across all meshes.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{byName: make(map[string]Mesh)}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Source() string {
	return m.source
}

func (m *model) Meshes() []Mesh {
	return m.meshes
}

func (m *model) Mesh(name string) (Mesh, bool) {
	mesh, ok := m.byName[name]
	return mesh, ok
}

func (m *model) MeshNames() []string {
	names := make([]string, len(m.meshes))
	for i, mesh := range m.meshes {
		names[i] = mesh.Name()
	}
	return names
}

func (m *model) VertexCount() int {
	total := 0
	for _, mesh := range m.meshes {
		total += mesh.Geometry().VertexCount()
	}
	return total
}

func (m *model) addMesh(mesh Mesh) {
	m.meshes = append(m.meshes, mesh)
	if _, exists := m.byName[mesh.Name()]; !exists {
		m.byName[mesh.Name()] = mesh
	}
}
