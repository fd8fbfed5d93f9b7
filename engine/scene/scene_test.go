package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-face/engine/camera"
	"github.com/Carmen-Shannon/oxy-face/engine/light"
	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeRenderer records what the scene asks of the GPU.
type fakeRenderer struct {
	pipelines  []string
	culls      []wgpu.CullMode
	bindGroups []int
	meshes     int
	writes     [][]bind_group_provider.BufferWrite
	draws      []string
	failMesh   bool
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(string) pipeline.Pipeline { return nil }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.pipelines = append(f.pipelines, p.PipelineKey())
		f.culls = append(f.culls, p.CullMode())
	}
	return nil
}

func (f *fakeRenderer) Resize(int, int) {}
func (f *fakeRenderer) SetClearColor(renderer.ClearColor) {}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) BeginFrame() error { return nil }
func (f *fakeRenderer) EndFrame() {}
func (f *fakeRenderer) Present() {}

func (f *fakeRenderer) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	if f.failMesh {
		return errors.New("out of memory")
	}
	f.meshes++
	p.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, p.Group())
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, append([]bind_group_provider.BufferWrite(nil), writes...))
}

func (f *fakeRenderer) DrawCall(key string, mp bind_group_provider.BindGroupProvider, bgs []bind_group_provider.BindGroupProvider) error {
	if len(bgs) != 3 || bgs[2] != mp {
		return errors.New("unexpected bind groups")
	}
	f.draws = append(f.draws, key+":"+mp.Label())
	return nil
}

func triangle(name string) model.Mesh {
	return model.NewMesh(
		model.WithMeshName(name),
		model.WithGeometry(model.Geometry{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Indices:   []uint32{0, 1, 2},
		}),
		model.WithTargets([]model.MorphTarget{
			{Name: "jawOpen", PositionDeltas: [][3]float32{{0, -1, 0}, {0, 0, 0}, {0, 0, 0}}},
		}),
	)
}

func newTestScene(t *testing.T, r *fakeRenderer) Scene {
	t.Helper()
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	s, err := NewScene("test", cam, r, light.NewRig(), WithComputeWorkers(2), WithActive(true))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	t.Cleanup(s.Release)
	return s
}

func TestNewSceneInitialisesUniforms(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestScene(t, r)

	if len(r.pipelines) != 1 || r.pipelines[0] != pipeline.PhongPipelineKey {
		t.Fatalf("expected the phong pipeline to be registered, got %v", r.pipelines)
	}
	if len(r.bindGroups) != 2 || r.bindGroups[0] != 0 || r.bindGroups[1] != 1 {
		t.Fatalf("expected camera and lights bind groups at 0 and 1, got %v", r.bindGroups)
	}
	if !s.Active() || s.Model() != nil {
		t.Fatalf("expected an active empty scene")
	}
}

func TestDoubleSidedPipeline(t *testing.T) {
	cases := []struct {
		name        string
		doubleSided bool
		want        wgpu.CullMode
	}{
		{"culled", false, wgpu.CullModeBack},
		{"double sided", true, wgpu.CullModeNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &fakeRenderer{}
			cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
			s, err := NewScene("test", cam, r, light.NewRig(), WithDoubleSided(c.doubleSided))
			if err != nil {
				t.Fatalf("NewScene: %v", err)
			}
			defer s.Release()
			if len(r.culls) != 1 || r.culls[0] != c.want {
				t.Fatalf("expected cull mode %v, got %v", c.want, r.culls)
			}
		})
	}
}

func TestSetModelAndDraw(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestScene(t, r)

	cc := s.Camera().Controller()
	cc.Orbit(40, 10)

	m := model.NewModel(model.WithName("head"), model.WithMeshes(triangle("face"), triangle("teeth")))
	if err := s.SetModel(m); err != nil {
		t.Fatalf("SetModel: %v", err)
	}
	if len(s.Animators()) != 2 || r.meshes != 2 {
		t.Fatalf("expected two animators with buffers, got %d/%d", len(s.Animators()), r.meshes)
	}
	if cc.Azimuth() != 0 {
		t.Fatalf("loading a model should reset the camera, azimuth %v", cc.Azimuth())
	}

	s.DrawCalls()
	want := []string{"phong:face", "phong:teeth"}
	if len(r.draws) != len(want) {
		t.Fatalf("expected draws %v, got %v", want, r.draws)
	}
	for i := range want {
		if r.draws[i] != want[i] {
			t.Fatalf("expected draws %v, got %v", want, r.draws)
		}
	}

	s.ClearModel()
	if s.Model() != nil || len(s.Animators()) != 0 {
		t.Fatalf("ClearModel should leave the scene empty")
	}
}

func TestSetModelFailureLeavesSceneEmpty(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestScene(t, r)
	if err := s.SetModel(model.NewModel(model.WithMeshes(triangle("face")))); err != nil {
		t.Fatalf("SetModel: %v", err)
	}

	r.failMesh = true
	if err := s.SetModel(model.NewModel(model.WithMeshes(triangle("other")))); err == nil {
		t.Fatalf("expected an error from the failing renderer")
	}
	if s.Model() != nil || len(s.Animators()) != 0 {
		t.Fatalf("a failed load should leave the scene empty")
	}
}

func TestPrepareFrameCoalescesWrites(t *testing.T) {
	cases := []struct {
		name       string
		influence  bool
		wantWrites int
	}{
		{"clean_mesh_uniforms_only", false, 2},
		{"dirty_mesh_adds_vertices_and_object", true, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &fakeRenderer{}
			s := newTestScene(t, r)
			mesh := triangle("face")
			if err := s.SetModel(model.NewModel(model.WithMeshes(mesh))); err != nil {
				t.Fatalf("SetModel: %v", err)
			}

			// The first frame carries the object uniform staged at load.
			s.PrepareFrame()
			if got := len(r.writes[0]); got != 3 {
				t.Fatalf("expected 3 writes on the first frame, got %d", got)
			}

			if c.influence {
				mesh.SetInfluence(0, 0.5)
			}
			s.PrepareFrame()
			if len(r.writes) != 2 {
				t.Fatalf("expected one WriteBuffers call per frame, got %d", len(r.writes))
			}
			if got := len(r.writes[1]); got != c.wantWrites {
				t.Fatalf("expected %d writes, got %d", c.wantWrites, got)
			}
		})
	}
}
