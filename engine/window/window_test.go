package window

import "testing"

func TestWindowSizeClamping(t *testing.T) {
	cases := []struct {
		name          string
		opts          []WindowBuilderOption
		width, height int
	}{
		{"defaults", nil, 1280, 720},
		{"in range", []WindowBuilderOption{WithSize(800, 600)}, 800, 600},
		{"too small", []WindowBuilderOption{WithSize(10, 10)}, 320, 240},
		{"too large", []WindowBuilderOption{WithSize(10000, 10000)}, 3840, 2160},
		{"custom limits", []WindowBuilderOption{WithSizeLimits(0, 0, 1024, 768), WithSize(1920, 1080)}, 1024, 768},
		{"min above max", []WindowBuilderOption{WithSizeLimits(2000, 0, 1000, 0), WithSize(1, 720)}, 1000, 720},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newEngineWindow(c.opts...)
			if w.Width() != c.width || w.Height() != c.height {
				t.Fatalf("expected %dx%d, got %dx%d", c.width, c.height, w.Width(), w.Height())
			}
		})
	}
}

func TestWindowTitleAndCallbacks(t *testing.T) {
	w := newEngineWindow(WithTitle("head"))
	if w.title != "head" {
		t.Fatalf("expected title head, got %q", w.title)
	}
	var dropped []string
	w.SetDropCallback(func(paths []string) { dropped = paths })
	w.onDrop([]string{"a.glb"})
	if len(dropped) != 1 || dropped[0] != "a.glb" {
		t.Fatalf("drop callback not stored, got %v", dropped)
	}
}
