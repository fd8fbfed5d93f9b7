package animator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-face/common"
	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/shader"
)

// ObjectBinding is the binding of the per-object uniform inside the object bind group.
const ObjectBinding = 0

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	mesh     model.Mesh
	provider bind_group_provider.BindGroupProvider

	vertices []model.GPUVertex
	staged   []bind_group_provider.BufferWrite
	blends   uint64
}

// Animator defines the public interface for the morph animation of a single mesh.
//
// The Animator owns the mesh's GPU provider (object uniform plus vertex and index buffers) and a
// reusable CPU vertex slice. Each frame PrepareFrame re-blends the morph targets when the mesh
// changed, staging the new vertices and object uniform, and Flush hands the staged writes to the
// caller for a single coalesced Renderer.WriteBuffers call.
//
// PrepareFrame may run on a worker goroutine; different animators never share state.
type Animator interface {
	// Mesh returns the animated mesh.
	//
	// Returns:
	//   - model.Mesh: the mesh
	Mesh() model.Mesh

	// Provider returns the BindGroupProvider bound at the object group and holding the mesh buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	Provider() bind_group_provider.BindGroupProvider

	// InitialData blends the current influences and returns the data used to create the GPU buffers.
	// The object uniform is staged for the next Flush.
	//
	// Returns:
	//   - []byte: the vertex data
	//   - []byte: the uint32 index data
	//   - int: the number of indices
	InitialData() ([]byte, []byte, int)

	// PrepareFrame re-blends the mesh when it is dirty and stages the vertex buffer and object
	// uniform writes. Clean meshes stage nothing.
	//
	// Returns:
	//   - bool: true if the mesh was re-blended
	PrepareFrame() bool

	// Flush returns and clears the staged GPU buffer writes.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the pending writes, nil when nothing changed
	Flush() []bind_group_provider.BufferWrite

	// BlendCount returns how many times the mesh has been blended.
	//
	// Returns:
	//   - uint64: the blend count
	BlendCount() uint64

	// Release frees the GPU resources held by the provider.
	Release()
}

var _ Animator = &animator{}

// NewAnimator creates an Animator for the given mesh. Without WithProvider a provider labelled
// after the mesh is created at the object bind group.
//
// Parameters:
//   - mesh: the mesh to animate
//   - options: variadic list of AnimatorBuilderOption functions to configure the animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(mesh model.Mesh, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mu:   &sync.Mutex{},
		mesh: mesh,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.provider == nil {
		a.provider = bind_group_provider.NewBindGroupProvider(mesh.Name(), bind_group_provider.WithGroup(shader.GroupObject))
	}
	return a
}

func (a *animator) Mesh() model.Mesh {
	return a.mesh
}

func (a *animator) Provider() bind_group_provider.BindGroupProvider {
	return a.provider
}

func (a *animator) InitialData() ([]byte, []byte, int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.vertices = a.mesh.Blend(a.vertices)
	a.blends++
	object := a.mesh.ObjectData()
	a.staged = append(a.staged[:0], bind_group_provider.BufferWrite{
		Provider: a.provider,
		Binding:  ObjectBinding,
		Data:     object.Marshal(),
	})

	indices := a.mesh.Geometry().Indices
	if len(indices) == 0 {
		indices = sequentialIndices(len(a.vertices))
	}

	vertexData := make([]byte, len(a.vertices)*shader.VertexStride)
	copy(vertexData, common.SliceToBytes(a.vertices))
	indexData := make([]byte, len(indices)*4)
	copy(indexData, common.SliceToBytes(indices))
	return vertexData, indexData, len(indices)
}

func (a *animator) PrepareFrame() bool {
	if !a.mesh.Dirty() {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.vertices = a.mesh.Blend(a.vertices)
	a.blends++
	object := a.mesh.ObjectData()

	a.staged = append(a.staged[:0],
		bind_group_provider.BufferWrite{
			Provider: a.provider,
			Binding:  bind_group_provider.VertexBufferBinding,
			Data:     common.SliceToBytes(a.vertices),
		},
		bind_group_provider.BufferWrite{
			Provider: a.provider,
			Binding:  ObjectBinding,
			Data:     object.Marshal(),
		},
	)
	return true
}

func (a *animator) Flush() []bind_group_provider.BufferWrite {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.staged) == 0 {
		return nil
	}
	out := make([]bind_group_provider.BufferWrite, len(a.staged))
	copy(out, a.staged)
	a.staged = a.staged[:0]
	return out
}

func (a *animator) BlendCount() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blends
}

func (a *animator) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider.Release()
	a.staged = nil
}

// sequentialIndices builds the 0..n-1 index list drawn for non-indexed geometry.
func sequentialIndices(n int) []uint32 {
	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}
