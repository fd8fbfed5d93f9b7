package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func triangleMesh(options ...MeshBuilderOption) Mesh {
	base := []MeshBuilderOption{
		WithMeshName("head"),
		WithGeometry(Geometry{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Indices:   []uint32{0, 1, 2},
		}),
		WithTargets([]MorphTarget{
			{Name: "jawOpen", PositionDeltas: [][3]float32{{0, -1, 0}, {0, 0, 0}, {0, 0, 0}}},
			{Name: "mouthLeft", PositionDeltas: [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 0, 0}}},
		}),
		WithDictionary(map[string]int{"jawOpen": 0, "mouthLeft": 1}),
	}
	return NewMesh(append(base, options...)...)
}

func TestNewMeshDefaults(t *testing.T) {
	m := triangleMesh()

	if got := m.Geometry().Normals; len(got) != 3 || got[0] != [3]float32{0, 0, 1} {
		t.Fatalf("expected generated +Z normals, got %v", got)
	}
	if got := m.Influences(); len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Fatalf("expected two zero influences, got %v", got)
	}
	if m.Material() == nil {
		t.Fatalf("expected a default material")
	}
	if !m.Dirty() {
		t.Fatalf("a new mesh has never been uploaded and should be dirty")
	}
}

func TestMeshFallbackDictionary(t *testing.T) {
	m := NewMesh(WithTargets(make([]MorphTarget, 3)))

	for i, name := range []string{"0", "1", "2"} {
		got, ok := m.MorphIndex(name)
		if !ok || got != i {
			t.Fatalf("MorphIndex(%q) = %d, %v; want %d, true", name, got, ok, i)
		}
	}
	if _, ok := m.MorphIndex("3"); ok {
		t.Fatalf("index past the target count should not resolve")
	}
	if names := m.MorphNames(); len(names) != 3 || names[2] != "2" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestMeshInfluencesAndDirty(t *testing.T) {
	cases := []struct {
		name      string
		index     int
		weight    float32
		wantDirty bool
	}{
		{"changed", 0, 0.5, true},
		{"unchanged", 0, 0, false},
		{"out_of_range", 7, 1, false},
		{"negative_index", -1, 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := triangleMesh()
			m.Blend(nil)
			m.SetInfluence(c.index, c.weight)
			if m.Dirty() != c.wantDirty {
				t.Fatalf("expected dirty=%v", c.wantDirty)
			}
		})
	}
}

func TestMeshBlend(t *testing.T) {
	m := triangleMesh()
	jaw, _ := m.MorphIndex("jawOpen")
	left, _ := m.MorphIndex("mouthLeft")
	m.SetInfluence(jaw, 0.5)
	m.SetInfluence(left, 0.25)

	out := m.Blend(nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(out))
	}
	want := [][3]float32{{0, -0.5, 0}, {1.5, 0, 0}, {0, 1, 0}}
	for i, p := range want {
		if out[i].Position != p {
			t.Fatalf("vertex %d: expected %v, got %v", i, p, out[i].Position)
		}
		if out[i].Normal != [3]float32{0, 0, 1} {
			t.Fatalf("vertex %d: expected unchanged normal, got %v", i, out[i].Normal)
		}
	}
	if m.Dirty() {
		t.Fatalf("Blend should clear the dirty flag")
	}

	m.ResetInfluences()
	again := m.Blend(out)
	if &again[0] != &out[0] {
		t.Fatalf("Blend should reuse a large enough destination")
	}
	if again[0].Position != [3]float32{0, 0, 0} {
		t.Fatalf("expected base position after reset, got %v", again[0].Position)
	}
}

func TestMeshBlendNormals(t *testing.T) {
	m := NewMesh(
		WithGeometry(Geometry{
			Positions: [][3]float32{{0, 0, 0}},
			Normals:   [][3]float32{{0, 0, 1}},
		}),
		WithTargets([]MorphTarget{{Name: "tilt", NormalDeltas: [][3]float32{{0, 0, -1}}}}),
		WithInfluences([]float32{2}),
	)
	out := m.Blend(nil)
	if out[0].Normal != [3]float32{0, 0, -1} {
		t.Fatalf("expected blended normal renormalized to -Z, got %v", out[0].Normal)
	}
}

func TestGenerateNormals(t *testing.T) {
	cases := []struct {
		name      string
		positions [][3]float32
		indices   []uint32
		want      [][3]float32
	}{
		{
			name:      "indexed_ccw",
			positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			indices:   []uint32{0, 1, 2},
			want:      [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		},
		{
			name:      "non_indexed_cw",
			positions: [][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}},
			want:      [][3]float32{{0, 0, -1}, {0, 0, -1}, {0, 0, -1}},
		},
		{
			name:      "unreferenced_vertex",
			positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}},
			indices:   []uint32{0, 1, 2},
			want:      [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 1, 0}},
		},
		{
			name:      "out_of_range_index",
			positions: [][3]float32{{0, 0, 0}},
			indices:   []uint32{0, 1, 2},
			want:      [][3]float32{{0, 1, 0}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := GenerateNormals(c.positions, c.indices)
			if len(got) != len(c.want) {
				t.Fatalf("expected %d normals, got %d", len(c.want), len(got))
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("normal %d: expected %v, got %v", i, c.want[i], got[i])
				}
			}
		})
	}
}

func TestRecomputeNormals(t *testing.T) {
	m := triangleMesh(WithGeometry(Geometry{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
		Indices:   []uint32{0, 1, 2},
	}))
	if m.Geometry().Normals[0] != [3]float32{1, 0, 0} {
		t.Fatalf("expected supplied normals to be kept")
	}
	m.Blend(nil)
	m.RecomputeNormals()
	if m.Geometry().Normals[0] != [3]float32{0, 0, 1} || !m.Dirty() {
		t.Fatalf("expected recomputed +Z normals and a dirty mesh")
	}
}

func TestObjectData(t *testing.T) {
	world := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	m := NewMesh(WithWorldMatrix(world))

	data := m.ObjectData()
	if data.Model != [16]float32(world) {
		t.Fatalf("expected world matrix in uniform")
	}
	if data.Normal[0] != 0.5 || data.Normal[5] != 0.5 || data.Normal[10] != 0.5 || data.Normal[15] != 1 {
		t.Fatalf("expected inverse-transpose scale of 0.5, got %v", data.Normal)
	}
	if data.Normal[12] != 0 || data.Normal[13] != 0 || data.Normal[14] != 0 {
		t.Fatalf("normal matrix must drop translation, got %v", data.Normal)
	}
	if n := len(data.Marshal()); n != 160 || data.Size() != 160 {
		t.Fatalf("expected 160-byte uniform, got %d (size %d)", n, data.Size())
	}
}

func TestModelLookup(t *testing.T) {
	first := NewMesh(WithMeshName("teeth"))
	dup := NewMesh(WithMeshName("teeth"))
	head := triangleMesh()
	m := NewModel(WithName("avatar"), WithSource("avatar.glb"), WithMeshes(first, head, dup))

	cases := []struct {
		name string
		want Mesh
		ok   bool
	}{
		{"head", head, true},
		{"teeth", first, true},
		{"tongue", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := m.Mesh(c.name)
			if ok != c.ok || got != c.want {
				t.Fatalf("Mesh(%q) = %v, %v", c.name, got, ok)
			}
		})
	}

	if names := m.MeshNames(); len(names) != 3 || names[1] != "head" {
		t.Fatalf("unexpected mesh order %v", names)
	}
	if m.VertexCount() != 3 {
		t.Fatalf("expected 3 vertices, got %d", m.VertexCount())
	}
}
