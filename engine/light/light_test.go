package light

import (
	"encoding/binary"
	"math"
	"testing"
)

func readFloat(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestLightDefaults(t *testing.T) {
	cases := []struct {
		name      string
		lightType LightType
		opts      []LightBuilderOption
		radiance  [3]float32
		direction [3]float32
	}{
		{"white", LightTypePoint, nil, [3]float32{1, 1, 1}, [3]float32{0, 1, 0}},
		{"hex_half", LightTypeAmbient, []LightBuilderOption{WithColorHex(0xff0000), WithIntensity(0.5)}, [3]float32{0.5, 0, 0}, [3]float32{0, 1, 0}},
		{"disabled", LightTypeDirectional, []LightBuilderOption{WithEnabled(false), WithPosition(0, 0, 2)}, [3]float32{}, [3]float32{0, 0, 1}},
		{"origin", LightTypeDirectional, []LightBuilderOption{WithPosition(0, 0, 0)}, [3]float32{1, 1, 1}, [3]float32{0, 1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLight(c.lightType, c.opts...)
			if l.Type() != c.lightType {
				t.Fatalf("expected %s, got %s", c.lightType, l.Type())
			}
			if got := l.Radiance(); got != c.radiance {
				t.Fatalf("expected radiance %v, got %v", c.radiance, got)
			}
			if got := l.Direction(); got != c.direction {
				t.Fatalf("expected direction %v, got %v", c.direction, got)
			}
		})
	}
}

func TestRigDefaults(t *testing.T) {
	r := NewRig()
	u := r.Uniform()

	if u.Ambient != [3]float32{0.6, 0.6, 0.6} {
		t.Fatalf("unexpected ambient %v", u.Ambient)
	}
	length := float32(math.Sqrt(5*5 + 10*10 + 7.5*7.5))
	want := [3]float32{5 / length, 10 / length, 7.5 / length}
	for i := range want {
		if !approx(u.Direction[i], want[i]) {
			t.Fatalf("expected direction %v, got %v", want, u.Direction)
		}
	}
	if u.PointPosition != [3]float32{5, 5, 5} || u.PointRange != 100 {
		t.Fatalf("unexpected point light %v range %v", u.PointPosition, u.PointRange)
	}

	r.Point().SetEnabled(false)
	if got := r.Uniform().PointColor; got != [3]float32{} {
		t.Fatalf("disabled point light should marshal black, got %v", got)
	}
}

func TestRigOptions(t *testing.T) {
	ambient := NewLight(LightTypeAmbient, WithColor(0, 1, 0), WithIntensity(0.25))
	r := NewRig(WithAmbient(ambient))
	if r.Ambient() != ambient {
		t.Fatalf("expected supplied ambient light")
	}
	if got := r.Uniform().Ambient; got != [3]float32{0, 0.25, 0} {
		t.Fatalf("unexpected ambient %v", got)
	}
	if r.Directional() == nil || r.Point() == nil {
		t.Fatalf("missing lights should get defaults")
	}
}

func TestGPULightUniformMarshal(t *testing.T) {
	u := GPULightUniform{
		Ambient:          [3]float32{0.1, 0.2, 0.3},
		Direction:        [3]float32{0, 1, 0},
		DirectionalColor: [3]float32{1, 1, 1},
		PointPosition:    [3]float32{5, 6, 7},
		PointRange:       100,
		PointColor:       [3]float32{0.5, 0.5, 0.5},
	}
	if u.Size() != 80 {
		t.Fatalf("expected 80 bytes, got %d", u.Size())
	}

	buf := u.Marshal()
	cases := []struct {
		offset int
		want   float32
	}{
		{0, 0.1}, {8, 0.3}, {12, 0},
		{20, 1},
		{32, 1},
		{48, 5}, {56, 7}, {60, 100},
		{64, 0.5}, {76, 0},
	}
	for _, c := range cases {
		if got := readFloat(buf, c.offset); got != c.want {
			t.Fatalf("offset %d: expected %v, got %v", c.offset, c.want, got)
		}
	}
}
