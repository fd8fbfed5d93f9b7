package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestPhongSourceDeclaresEntryPoints(t *testing.T) {
	src := PhongSource()
	for _, want := range []string{"fn vs_main", "fn fs_main", "@group(0)", "@group(1)", "@group(2)"} {
		if !strings.Contains(src, want) {
			t.Fatalf("embedded source is missing %q", want)
		}
	}
}

func TestPhongShaders(t *testing.T) {
	cases := []struct {
		name       string
		shader     Shader
		entry      string
		groups     []int
		vertexBufs int
	}{
		{"vertex", PhongVertexShader(), "vs_main", []int{GroupCamera, GroupObject}, 1},
		{"fragment", PhongFragmentShader(), "fs_main", []int{GroupCamera, GroupLights, GroupObject}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.shader.EntryPoint() != c.entry {
				t.Fatalf("expected entry point %s, got %s", c.entry, c.shader.EntryPoint())
			}
			if len(c.shader.BindGroupLayoutDescriptors()) != len(c.groups) {
				t.Fatalf("expected %d groups, got %d", len(c.groups), len(c.shader.BindGroupLayoutDescriptors()))
			}
			for _, g := range c.groups {
				if len(c.shader.BindGroupLayoutDescriptor(g).Entries) != 1 {
					t.Fatalf("group %d should declare one entry", g)
				}
			}
			if len(c.shader.VertexLayouts()) != c.vertexBufs {
				t.Fatalf("expected %d vertex buffers, got %d", c.vertexBufs, len(c.shader.VertexLayouts()))
			}
			if c.shader.Module() == nil || c.shader.Module().WGSLDescriptor.Code != PhongSource() {
				t.Fatalf("module should carry the embedded source")
			}
		})
	}
}

func TestPhongBindGroupLayoutSizes(t *testing.T) {
	cases := []struct {
		group int
		size  uint64
	}{
		{GroupCamera, 80},
		{GroupLights, 80},
		{GroupObject, 160},
	}
	for _, c := range cases {
		desc := PhongBindGroupLayout(c.group)
		entry := desc.Entries[0]
		if entry.Buffer.MinBindingSize != c.size {
			t.Fatalf("group %d: expected %d bytes, got %d", c.group, c.size, entry.Buffer.MinBindingSize)
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
			t.Fatalf("group %d should bind a uniform buffer", c.group)
		}
	}
	if len(PhongBindGroupLayout(7).Entries) != 0 {
		t.Fatalf("unknown group should yield an empty layout")
	}
}

func TestPhongVertexLayout(t *testing.T) {
	layout := PhongVertexLayout()
	if layout.ArrayStride != VertexStride || len(layout.Attributes) != 2 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if layout.Attributes[1].Offset != 12 || layout.Attributes[1].ShaderLocation != 1 {
		t.Fatalf("normal attribute should sit at offset 12, location 1")
	}
}

func TestNewShaderRequiresSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing source")
		}
	}()
	NewShader("empty", ShaderTypeVertex)
}
