package material

// Default Phong parameters applied to meshes named in the phong list.
const (
	DefaultShininess float32 = 30
	DefaultSpecular  uint32  = 0x444444
)

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor [4]float32
	specular  [3]float32
	shininess float32
	phong     bool
}

// Material defines the interface for a Blinn-Phong surface description.
//
// Surface properties are set at load time and are read-only through this interface.
// The GPU-side copy lives in the per-object uniform written by the mesh animator, see Uniform.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the diffuse RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Specular retrieves the specular RGB color of the material.
	//
	// Returns:
	//   - [3]float32: the specular color
	Specular() [3]float32

	// Shininess retrieves the Blinn-Phong specular exponent.
	//
	// Returns:
	//   - float32: the shininess
	Shininess() float32

	// Phong reports whether the material was explicitly promoted to a Phong material
	// rather than carried over from the imported PBR base color.
	//
	// Returns:
	//   - bool: true for promoted Phong materials
	Phong() bool

	// Uniform builds the GPU-aligned material block.
	//
	// Returns:
	//   - GPUMaterial: the material uniform data
	Uniform() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without options the material is opaque white with a faint specular highlight.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
		specular:  HexToRGB(DefaultSpecular),
		shininess: DefaultShininess,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewPhongMaterial promotes an existing material to a Phong material with the default shininess
// and specular color, keeping its name and base color.
//
// Parameters:
//   - from: the material to copy the color from, may be nil
//
// Returns:
//   - Material: the promoted material
func NewPhongMaterial(from Material) Material {
	opts := []MaterialBuilderOption{
		WithShininess(DefaultShininess),
		WithSpecularHex(DefaultSpecular),
		WithPhong(true),
	}
	if from != nil {
		opts = append(opts, WithName(from.Name()), WithBaseColor(from.BaseColor()))
	}
	return NewMaterial(opts...)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Specular() [3]float32 {
	return m.specular
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Phong() bool {
	return m.phong
}

func (m *material) Uniform() GPUMaterial {
	return GPUMaterial{
		BaseColor: m.baseColor,
		Specular:  m.specular,
		Shininess: m.shininess,
	}
}

// HexToRGB converts a 0xRRGGBB color to normalized RGB components.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - [3]float32: red, green and blue in [0, 1]
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
