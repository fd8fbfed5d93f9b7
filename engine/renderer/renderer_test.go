package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-face/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
		2: {Label: "object", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Label: "lights", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
		2: {Label: "object", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(merged))
	}
	if merged[0].Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Fatalf("vertex-only group should keep its visibility")
	}
	if merged[1].Entries[0].Visibility != wgpu.ShaderStageFragment {
		t.Fatalf("fragment-only group should keep its visibility")
	}

	object := merged[2].Entries
	if len(object) != 2 || object[0].Binding != 0 || object[1].Binding != 1 {
		t.Fatalf("expected sorted bindings 0 and 1, got %+v", object)
	}
	if object[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Fatalf("shared binding should be visible to both stages")
	}
}

func TestMergePhongLayoutsIsContiguous(t *testing.T) {
	merged := mergeBindGroupLayouts(
		shader.PhongVertexShader().BindGroupLayoutDescriptors(),
		shader.PhongFragmentShader().BindGroupLayoutDescriptors(),
	)
	for g := range len(merged) {
		if _, ok := merged[g]; !ok {
			t.Fatalf("group %d missing from merged phong layout", g)
		}
	}
	if len(merged) != 3 {
		t.Fatalf("expected 3 phong groups, got %d", len(merged))
	}
}

func TestMSAASampleCountValid(t *testing.T) {
	cases := []struct {
		count MSAASampleCount
		want  bool
	}{
		{MSAAOff, true},
		{MSAA4x, true},
		{2, false},
		{8, false},
	}
	for _, c := range cases {
		if c.count.Valid() != c.want {
			t.Fatalf("count %d: expected valid=%v", c.count, c.want)
		}
	}

	r := &renderer{msaa: MSAA4x}
	WithMSAA(8)(r)
	if r.msaa != MSAA4x {
		t.Fatalf("unsupported sample count should keep the default")
	}
	WithMSAA(MSAAOff)(r)
	if r.msaa != MSAAOff {
		t.Fatalf("expected MSAA off")
	}
}
