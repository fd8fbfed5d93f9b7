package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the viewer configuration. Keys are snake_case in YAML.
type Config struct {
	Window     WindowConfig   `yaml:"window"`
	Assets     AssetsConfig   `yaml:"assets"`
	Meshes     MeshConfig     `yaml:"meshes"`
	Track      TrackConfig    `yaml:"track"`
	Loop       bool           `yaml:"loop"`
	Camera     CameraConfig   `yaml:"camera"`
	Lights     LightsConfig   `yaml:"lights"`
	Background Color          `yaml:"background"`
	Renderer   RendererConfig `yaml:"renderer"`
	Audio      AudioConfig    `yaml:"audio"`
	Watch      bool           `yaml:"watch"`
	Profile    bool           `yaml:"profile"`

	// dir is the directory of the loaded file; relative asset paths from the file are resolved against it.
	dir string
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// AssetsConfig holds the start-up asset paths and the model presets bound to keys 1-9.
type AssetsConfig struct {
	Model   string   `yaml:"model"`
	Track   string   `yaml:"track"`
	Audio   string   `yaml:"audio"`
	Presets []string `yaml:"presets"`
}

// MeshConfig names the meshes driven by the track and the meshes rendered with Phong shading.
type MeshConfig struct {
	Tracked []string `yaml:"tracked"`
	Phong   []string `yaml:"phong"`
}

type TrackConfig struct {
	Prefix    string  `yaml:"prefix"`
	TimeField string  `yaml:"time_field"`
	FrameRate float64 `yaml:"frame_rate"`
}

type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type LightConfig struct {
	Color     Color      `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Position  [3]float32 `yaml:"position"`
	Range     float32    `yaml:"range"`
}

type LightsConfig struct {
	Ambient     LightConfig `yaml:"ambient"`
	Directional LightConfig `yaml:"directional"`
	Point       LightConfig `yaml:"point"`
}

type RendererConfig struct {
	VSync       bool `yaml:"vsync"`
	MSAA        int  `yaml:"msaa"`
	DoubleSided bool `yaml:"double_sided"`
}

type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// Flags are command-line overrides. Empty strings and false leave the file value untouched.
type Flags struct {
	Model   string
	Track   string
	Audio   string
	Loop    bool
	Watch   bool
	Profile bool
}

// Default returns the configuration of the stock viewer.
//
// Returns:
//   - *Config: a new default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-face",
			Width:  1280,
			Height: 720,
		},
		Assets: AssetsConfig{
			Model:   "./assets/mark_mid_v5.glb",
			Track:   "./assets/animation_frames.csv",
			Audio:   "./assets/out.wav",
			Presets: []string{"./assets/mark_mid_v5.glb"},
		},
		Meshes: MeshConfig{
			Tracked: []string{"c_headWatertight_mid", "c_bottomDenture_mid", "c_tongue_mid"},
			Phong:   []string{"c_headWatertight_mid"},
		},
		Track: TrackConfig{
			Prefix:    "blendShapes.",
			TimeField: "timeCode",
			FrameRate: 60,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 1.5, 1},
			Target:   [3]float32{0, 1.5, 0},
			Fov:      50,
			Near:     0.1,
			Far:      1000,
		},
		Lights: LightsConfig{
			Ambient:     LightConfig{Color: 0xffffff, Intensity: 0.6},
			Directional: LightConfig{Color: 0xffffff, Intensity: 1, Position: [3]float32{5, 10, 7.5}},
			Point:       LightConfig{Color: 0xffffff, Intensity: 1, Position: [3]float32{5, 5, 5}, Range: 100},
		},
		Background: 0xf0f0f0,
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  4,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     1,
		},
	}
}

// Load reads a YAML file and overlays it onto Default. Keys missing from the file keep their default.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the file cannot be read or decoded
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML data over Default.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the document cannot be decoded
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve resolves relative asset paths read from a file against that file's directory, then applies
// the command-line overrides. Flag paths are used as given.
//
// Parameters:
//   - flags: the command-line overrides
func (c *Config) Resolve(flags Flags) {
	if c.dir != "" {
		c.Assets.Model = resolvePath(c.dir, c.Assets.Model)
		c.Assets.Track = resolvePath(c.dir, c.Assets.Track)
		c.Assets.Audio = resolvePath(c.dir, c.Assets.Audio)
		for i, p := range c.Assets.Presets {
			c.Assets.Presets[i] = resolvePath(c.dir, p)
		}
		c.dir = ""
	}

	if flags.Model != "" {
		c.Assets.Model = flags.Model
	}
	if flags.Track != "" {
		c.Assets.Track = flags.Track
	}
	if flags.Audio != "" {
		c.Assets.Audio = flags.Audio
	}
	c.Loop = c.Loop || flags.Loop
	c.Watch = c.Watch || flags.Watch
	c.Profile = c.Profile || flags.Profile
}

// Validate reports the first invalid setting.
//
// Returns:
//   - error: an error wrapping ErrInvalid, or nil
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case len(c.Meshes.Tracked) == 0:
		return fmt.Errorf("%w: meshes.tracked is empty", ErrInvalid)
	case len(c.Assets.Presets) > 9:
		return fmt.Errorf("%w: at most 9 presets, got %d", ErrInvalid, len(c.Assets.Presets))
	case c.Track.FrameRate <= 0:
		return fmt.Errorf("%w: track.frame_rate must be positive", ErrInvalid)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera.fov %v out of range", ErrInvalid, c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes %v..%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Position == c.Camera.Target:
		return fmt.Errorf("%w: camera position equals target", ErrInvalid)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4:
		return fmt.Errorf("%w: renderer.msaa must be 1 or 4, got %d", ErrInvalid, c.Renderer.MSAA)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalid)
	}

	colors := map[string]Color{
		"background":               c.Background,
		"lights.ambient.color":     c.Lights.Ambient.Color,
		"lights.directional.color": c.Lights.Directional.Color,
		"lights.point.color":       c.Lights.Point.Color,
	}
	for key, col := range colors {
		if !col.Valid() {
			return fmt.Errorf("%w: %s %#x is not a 24-bit colour", ErrInvalid, key, uint32(col))
		}
	}
	return nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
