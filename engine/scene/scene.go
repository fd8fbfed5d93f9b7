package scene

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-face/engine/camera"
	"github.com/Carmen-Shannon/oxy-face/engine/light"
	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/shader"
)

// Scene owns the loaded Model together with the Camera, light Rig and Renderer used to draw it.
// Each mesh of the model is driven by its own Animator, so morph influences written onto the
// meshes show up on screen on the next frame.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active reports whether the engine should render the scene.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive enables or disables rendering of the scene.
	//
	// Parameters:
	//   - active: the new active state
	SetActive(active bool)

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Rig returns the light rig.
	//
	// Returns:
	//   - light.Rig: the lights
	Rig() light.Rig

	// Model returns the currently loaded model, or nil when no model is loaded.
	//
	// Returns:
	//   - model.Model: the model
	Model() model.Model

	// SetModel replaces the loaded model. The animators and GPU buffers of the previous model are
	// released and the camera is moved back to its home view. On error the scene is left empty.
	//
	// Parameters:
	//   - m: the model to display
	//
	// Returns:
	//   - error: an error if GPU resources for a mesh could not be created
	SetModel(m model.Model) error

	// ClearModel releases the loaded model, leaving the scene empty.
	ClearModel()

	// Animators returns the animators of the loaded model, one per mesh.
	//
	// Returns:
	//   - []animator.Animator: a copy of the animator list
	Animators() []animator.Animator

	// PrepareFrame writes the camera and light uniforms, re-blends every dirty mesh on the worker
	// pool and submits all resulting buffer writes in a single call.
	PrepareFrame()

	// DrawCalls records one indexed draw per mesh into the current frame.
	DrawCalls()

	// Release stops the worker pool and frees all GPU resources held by the scene.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer
	rig light.Rig

	cameraBGP bind_group_provider.BindGroupProvider
	lightsBGP bind_group_provider.BindGroupProvider

	mdl       model.Model
	animators []animator.Animator

	// Reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider

	// computePool runs the per-mesh blends of PrepareFrame. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int

	doubleSided bool
}

var _ Scene = &scene{}

// NewScene creates a new Scene and initialises the camera and light uniforms on the GPU. The
// Blinn-Phong pipeline is registered with the renderer if it is not already.
// NewScene panics if cam, r or rig is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to view the scene through
//   - r: the renderer to draw with
//   - rig: the lights of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if the pipeline or uniform buffers could not be created
func NewScene(name string, cam camera.Camera, r renderer.Renderer, rig light.Rig, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if rig == nil {
		panic("scene: NewScene requires a non-nil light Rig")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		cam:                cam,
		r:                  r,
		rig:                rig,
		computeWorkers:     max(runtime.NumCPU()-1, 1),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 3),
	}
	for _, option := range options {
		option(s)
	}

	// Created after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	var pipelineOpts []pipeline.PipelineBuilderOption
	if s.doubleSided {
		pipelineOpts = append(pipelineOpts, pipeline.WithDoubleSided())
	}
	if err := r.RegisterPipelines(pipeline.NewPhongPipeline(pipelineOpts...)); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	s.cameraBGP = bind_group_provider.NewBindGroupProvider(name+"_camera", bind_group_provider.WithGroup(shader.GroupCamera))
	if err := r.InitBindGroup(s.cameraBGP, shader.PhongBindGroupLayout(shader.GroupCamera)); err != nil {
		return nil, fmt.Errorf("scene %q: camera bind group: %w", name, err)
	}
	s.lightsBGP = bind_group_provider.NewBindGroupProvider(name+"_lights", bind_group_provider.WithGroup(shader.GroupLights))
	if err := r.InitBindGroup(s.lightsBGP, shader.PhongBindGroupLayout(shader.GroupLights)); err != nil {
		s.cameraBGP.Release()
		return nil, fmt.Errorf("scene %q: lights bind group: %w", name, err)
	}

	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Rig() light.Rig {
	return s.rig
}

func (s *scene) Model() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mdl
}

func (s *scene) Animators() []animator.Animator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]animator.Animator, len(s.animators))
	copy(out, s.animators)
	return out
}

func (s *scene) SetModel(m model.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	if m == nil {
		return nil
	}

	anims := make([]animator.Animator, 0, len(m.Meshes()))
	for _, mesh := range m.Meshes() {
		a := animator.NewAnimator(mesh)
		if err := s.initAnimator(a); err != nil {
			a.Release()
			for _, prev := range anims {
				prev.Release()
			}
			return fmt.Errorf("scene %q: mesh %q: %w", s.name, mesh.Name(), err)
		}
		anims = append(anims, a)
	}

	s.mdl = m
	s.animators = anims
	if ctrl := s.cam.Controller(); ctrl != nil {
		ctrl.Reset()
	}
	log.Printf("[Scene] %s: showing %q (%d meshes, %d vertices)", s.name, m.Name(), len(anims), m.VertexCount())
	return nil
}

// initAnimator creates the object bind group and mesh buffers of a single animator.
func (s *scene) initAnimator(a animator.Animator) error {
	if err := s.r.InitBindGroup(a.Provider(), shader.PhongBindGroupLayout(shader.GroupObject)); err != nil {
		return err
	}
	vertexData, indexData, indexCount := a.InitialData()
	return s.r.InitMeshBuffers(a.Provider(), vertexData, indexData, indexCount)
}

func (s *scene) ClearModel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *scene) clearLocked() {
	for _, a := range s.animators {
		a.Release()
	}
	s.animators = nil
	s.mdl = nil
}

func (s *scene) PrepareFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.Update()
	camUniform := s.cam.Uniform()
	lightUniform := s.rig.Uniform()

	allWrites := append(s.writePool[:0],
		bind_group_provider.BufferWrite{Provider: s.cameraBGP, Binding: 0, Data: camUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: 0, Data: lightUniform.Marshal()},
	)

	// Blend in parallel. The WaitGroup is the per-frame barrier since pool.Wait only returns once
	// the workers idle out.
	var wg sync.WaitGroup
	for id, a := range s.animators {
		wg.Add(1)
		aCap := a
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				return aCap.PrepareFrame(), nil
			},
		})
	}
	wg.Wait()

	for _, a := range s.animators {
		allWrites = append(allWrites, a.Flush()...)
	}
	s.writePool = allWrites
	s.r.WriteBuffers(allWrites)
}

func (s *scene) DrawCalls() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.animators {
		mp := a.Provider()
		if mp.IndexCount() == 0 {
			continue
		}
		bgs := append(s.drawBindGroupsPool[:0], s.cameraBGP, s.lightsBGP, mp)
		if err := s.r.DrawCall(pipeline.PhongPipelineKey, mp, bgs); err != nil {
			log.Printf("[Scene] %s: draw %q: %v", s.name, a.Mesh().Name(), err)
		}
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.computePool.Stop()
	s.cameraBGP.Release()
	s.lightsBGP.Release()
}
