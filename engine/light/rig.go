package light

import "sync"

// rig is the implementation of the Rig interface.
type rig struct {
	mu *sync.Mutex

	ambient     Light
	directional Light
	point       Light
}

// Rig is the fixed lighting set of the viewer: one ambient, one directional and one point light.
//
// The lights are mutable after construction; Uniform snapshots them under the rig's lock.
type Rig interface {
	// Ambient returns the ambient light.
	//
	// Returns:
	//   - Light: the ambient light
	Ambient() Light

	// Directional returns the directional light.
	//
	// Returns:
	//   - Light: the directional light
	Directional() Light

	// Point returns the point light.
	//
	// Returns:
	//   - Light: the point light
	Point() Light

	// Uniform snapshots the lights into the GPU light uniform.
	//
	// Returns:
	//   - GPULightUniform: the uniform ready to marshal
	Uniform() GPULightUniform
}

var _ Rig = &rig{}

// NewRig creates a Rig. Lights not supplied through options default to the stock viewer lighting:
// ambient white at 0.6, directional white at 1.0 from (5, 10, 7.5) and point white at 1.0 at (5, 5, 5)
// with range 100.
//
// Parameters:
//   - opts: variadic list of RigBuilderOption functions to configure the rig
//
// Returns:
//   - Rig: the new rig
func NewRig(opts ...RigBuilderOption) Rig {
	r := &rig{mu: &sync.Mutex{}}
	for _, opt := range opts {
		opt(r)
	}
	if r.ambient == nil {
		r.ambient = NewLight(LightTypeAmbient, WithIntensity(0.6))
	}
	if r.directional == nil {
		r.directional = NewLight(LightTypeDirectional, WithPosition(5, 10, 7.5))
	}
	if r.point == nil {
		r.point = NewLight(LightTypePoint, WithPosition(5, 5, 5), WithRange(100))
	}
	return r
}

func (r *rig) Ambient() Light {
	return r.ambient
}

func (r *rig) Directional() Light {
	return r.directional
}

func (r *rig) Point() Light {
	return r.point
}

func (r *rig) Uniform() GPULightUniform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return GPULightUniform{
		Ambient:          r.ambient.Radiance(),
		Direction:        r.directional.Direction(),
		DirectionalColor: r.directional.Radiance(),
		PointPosition:    r.point.Position(),
		PointRange:       r.point.Range(),
		PointColor:       r.point.Radiance(),
	}
}
