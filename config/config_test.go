package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Loop {
		t.Fatalf("loop should default to off")
	}
	if cfg.Background != 0xf0f0f0 {
		t.Fatalf("expected background 0xf0f0f0, got %#x", uint32(cfg.Background))
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  title: face
assets:
  track: take2.csv
meshes:
  tracked: [head]
track:
  prefix: ""
loop: true
background: "#202020"
lights:
  point:
    range: 10
renderer:
  double_sided: true
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := Default()
	if cfg.Window.Title != "face" || cfg.Window.Width != def.Window.Width {
		t.Fatalf("expected title overridden and width kept, got %+v", cfg.Window)
	}
	if cfg.Assets.Track != "take2.csv" || cfg.Assets.Model != def.Assets.Model {
		t.Fatalf("unexpected assets %+v", cfg.Assets)
	}
	if len(cfg.Meshes.Tracked) != 1 || cfg.Meshes.Tracked[0] != "head" {
		t.Fatalf("unexpected tracked meshes %v", cfg.Meshes.Tracked)
	}
	if cfg.Track.Prefix != "" || cfg.Track.TimeField != def.Track.TimeField {
		t.Fatalf("unexpected track options %+v", cfg.Track)
	}
	if !cfg.Loop || cfg.Background != 0x202020 {
		t.Fatalf("expected loop and background overridden")
	}
	if cfg.Lights.Point.Range != 10 || cfg.Lights.Point.Intensity != 1 {
		t.Fatalf("unexpected point light %+v", cfg.Lights.Point)
	}
	if !cfg.Renderer.DoubleSided || cfg.Renderer.MSAA != def.Renderer.MSAA {
		t.Fatalf("unexpected renderer options %+v", cfg.Renderer)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad_color", "background: \"#ggg000\""},
		{"short_color", "background: \"#fff\""},
		{"color_list", "background: [1, 2]"},
		{"bad_type", "window: 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.yaml)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_width", func(c *Config) { c.Window.Width = 0 }},
		{"no_tracked_meshes", func(c *Config) { c.Meshes.Tracked = nil }},
		{"too_many_presets", func(c *Config) { c.Assets.Presets = make([]string, 10) }},
		{"zero_frame_rate", func(c *Config) { c.Track.FrameRate = 0 }},
		{"flat_fov", func(c *Config) { c.Camera.Fov = 180 }},
		{"far_before_near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"camera_on_target", func(c *Config) { c.Camera.Target = c.Camera.Position }},
		{"msaa_2", func(c *Config) { c.Renderer.MSAA = 2 }},
		{"zero_sample_rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"wide_color", func(c *Config) { c.Lights.Ambient.Color = 0x1000000 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	abs := filepath.Join(dir, "abs", "out.wav")
	data := "assets:\n  model: models/head.glb\n  track: take.csv\n  audio: " + abs + "\n  presets: [models/a.glb]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Resolve(Flags{Track: "cli.csv", Watch: true})

	if want := filepath.Join(dir, "models", "head.glb"); cfg.Assets.Model != want {
		t.Fatalf("expected %s, got %s", want, cfg.Assets.Model)
	}
	if cfg.Assets.Track != "cli.csv" {
		t.Fatalf("flag path should be used as given, got %s", cfg.Assets.Track)
	}
	if cfg.Assets.Audio != abs {
		t.Fatalf("absolute path should be kept, got %s", cfg.Assets.Audio)
	}
	if want := filepath.Join(dir, "models", "a.glb"); cfg.Assets.Presets[0] != want {
		t.Fatalf("expected preset %s, got %s", want, cfg.Assets.Presets[0])
	}
	if !cfg.Watch || cfg.Loop || cfg.Profile {
		t.Fatalf("unexpected flags applied: watch=%v loop=%v profile=%v", cfg.Watch, cfg.Loop, cfg.Profile)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultPathsUntouched(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{})
	if cfg.Assets.Model != "./assets/mark_mid_v5.glb" {
		t.Fatalf("default paths should stay relative to the working directory, got %s", cfg.Assets.Model)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#f0f0f0", 0xf0f0f0, true},
		{"0x444444", 0x444444, true},
		{"16777215", 0xffffff, true},
		{" #000000 ", 0, true},
		{"#f0f0f0ff", 0, false},
		{"0x1000000", 0, false},
		{"white", 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.ok != (err == nil) {
				t.Fatalf("expected ok=%v, got err=%v", c.ok, err)
			}
			if c.ok && got != c.want {
				t.Fatalf("expected %#x, got %#x", uint32(c.want), uint32(got))
			}
		})
	}

	rgb := Color(0xff8000).RGB()
	if rgb[0] != 1 || rgb[2] != 0 || rgb[1] < 0.5 || rgb[1] > 0.51 {
		t.Fatalf("unexpected rgb %v", rgb)
	}
}
