package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	cases := []struct {
		name  string
		opts  []BindGroupProviderOption
		group int
	}{
		{"default_group", nil, 0},
		{"object_group", []BindGroupProviderOption{WithGroup(2)}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewBindGroupProvider(c.name, c.opts...)
			if p.Label() != c.name {
				t.Fatalf("expected label %q, got %q", c.name, p.Label())
			}
			if p.Group() != c.group {
				t.Fatalf("expected group %d, got %d", c.group, p.Group())
			}
			if p.BindGroup() != nil || p.VertexBuffer() != nil || p.Buffer(0) != nil {
				t.Fatalf("GPU resources must be nil before initialization")
			}
		})
	}
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithBuffer(0, nil))
	p.SetIndexCount(36)
	p.Release()
	if p.IndexCount() != 0 || len(p.Buffers()) != 0 {
		t.Fatalf("release should clear buffers and the index count")
	}
}
