package light

// RigBuilderOption is a function that configures a Rig instance during construction.
type RigBuilderOption func(*rig)

// WithAmbient sets the rig's ambient light.
//
// Parameters:
//   - l: the ambient light
//
// Returns:
//   - RigBuilderOption: a function that applies the option to a rig
func WithAmbient(l Light) RigBuilderOption {
	return func(r *rig) {
		r.ambient = l
	}
}

// WithDirectional sets the rig's directional light.
//
// Parameters:
//   - l: the directional light
//
// Returns:
//   - RigBuilderOption: a function that applies the option to a rig
func WithDirectional(l Light) RigBuilderOption {
	return func(r *rig) {
		r.directional = l
	}
}

// WithPoint sets the rig's point light.
//
// Parameters:
//   - l: the point light
//
// Returns:
//   - RigBuilderOption: a function that applies the option to a rig
func WithPoint(l Light) RigBuilderOption {
	return func(r *rig) {
		r.point = l
	}
}
