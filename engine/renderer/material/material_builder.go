package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the diffuse RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithSpecular is an option builder that sets the specular RGB color of the material.
//
// Parameters:
//   - specular: the specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(specular [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.specular = specular
	}
}

// WithSpecularHex is an option builder that sets the specular color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecularHex(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.specular = HexToRGB(hex)
	}
}

// WithShininess is an option builder that sets the Blinn-Phong specular exponent.
// Values <= 0 are ignored.
//
// Parameters:
//   - shininess: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		if shininess > 0 {
			m.shininess = shininess
		}
	}
}

// WithPhong is an option builder that marks the material as a promoted Phong material.
//
// Parameters:
//   - phong: true for promoted materials
//
// Returns:
//   - MaterialBuilderOption: a function that applies the phong flag to a material
func WithPhong(phong bool) MaterialBuilderOption {
	return func(m *material) {
		m.phong = phong
	}
}
