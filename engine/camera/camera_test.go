package camera

import (
	"encoding/binary"
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearVec(t *testing.T, label string, got, want [3]float32) {
	t.Helper()
	for i := range 3 {
		if !near(got[i], want[i]) {
			t.Fatalf("%s: expected %v, got %v", label, want, got)
		}
	}
}

func position(cc CameraController) [3]float32 {
	x, y, z := cc.Position()
	return [3]float32{x, y, z}
}

func target(cc CameraController) [3]float32 {
	x, y, z := cc.Target()
	return [3]float32{x, y, z}
}

func TestControllerHome(t *testing.T) {
	cc := NewCameraController()
	nearVec(t, "position", position(cc), [3]float32{0, 1.5, 1})
	nearVec(t, "target", target(cc), [3]float32{0, 1.5, 0})
	if !near(cc.Radius(), 1) || !near(cc.Azimuth(), 0) || !near(cc.Elevation(), 0) {
		t.Fatalf("unexpected spherical coords r=%v az=%v el=%v", cc.Radius(), cc.Azimuth(), cc.Elevation())
	}

	custom := NewCameraController(WithHome([3]float32{3, 4, 0}, [3]float32{0, 0, 0}))
	nearVec(t, "custom position", position(custom), [3]float32{3, 4, 0})
	if !near(custom.Radius(), 5) {
		t.Fatalf("expected radius 5, got %v", custom.Radius())
	}
}

func TestControllerOrbit(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(0.01))

	cc.Orbit(50, 0)
	if !near(cc.Azimuth(), -0.5) {
		t.Fatalf("expected azimuth -0.5, got %v", cc.Azimuth())
	}
	if !near(cc.Radius(), 1) {
		t.Fatalf("orbit must keep the radius, got %v", cc.Radius())
	}
	nearVec(t, "target", target(cc), [3]float32{0, 1.5, 0})
	p := position(cc)
	if !near(p[1], 1.5) || p[0] >= 0 {
		t.Fatalf("expected camera swung to -x at target height, got %v", p)
	}

	cc.Orbit(0, 10000)
	if el := cc.Elevation(); el >= math.Pi/2 || el < math.Pi/2-0.02 {
		t.Fatalf("expected elevation clamped below the pole, got %v", el)
	}
}

func TestControllerZoom(t *testing.T) {
	cases := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"in_one_step", 1, 1 / 1.1},
		{"out_one_step", -1, 1.1},
		{"clamp_min", 1000, 0.05},
		{"clamp_max", -1000, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cc := NewCameraController()
			cc.Zoom(c.delta)
			if !near(cc.Radius(), c.want) {
				t.Fatalf("expected radius %v, got %v", c.want, cc.Radius())
			}
			nearVec(t, "target", target(cc), [3]float32{0, 1.5, 0})
		})
	}
}

func TestControllerPanAndReset(t *testing.T) {
	cc := NewCameraController(WithPanSpeed(0.002))

	cc.Pan(100, 0)
	nearVec(t, "target after horizontal pan", target(cc), [3]float32{-0.2, 1.5, 0})
	nearVec(t, "position after horizontal pan", position(cc), [3]float32{-0.2, 1.5, 1})

	cc.Pan(0, 100)
	nearVec(t, "target after vertical pan", target(cc), [3]float32{-0.2, 1.7, 0})

	cc.Orbit(123, 45)
	cc.Zoom(3)
	cc.Reset()
	nearVec(t, "position after reset", position(cc), [3]float32{0, 1.5, 1})
	nearVec(t, "target after reset", target(cc), [3]float32{0, 1.5, 0})

	cc.SetView([3]float32{0, 0, 2}, [3]float32{0, 0, 0})
	if !near(cc.Radius(), 2) {
		t.Fatalf("expected radius 2, got %v", cc.Radius())
	}
	cc.Reset()
	if !near(cc.Radius(), 1) {
		t.Fatalf("SetView must not change the home view")
	}
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()), WithAspect(16.0/9.0))
	vp := cam.ViewProjectionMatrix()

	in := [4]float32{0, 1.5, 0, 1}
	var out [4]float32
	for row := range 4 {
		for col := range 4 {
			out[row] += vp[col*4+row] * in[col]
		}
	}
	if out[3] <= 0 {
		t.Fatalf("target should be in front of the camera, w=%v", out[3])
	}
	x, y, z := out[0]/out[3], out[1]/out[3], out[2]/out[3]
	if !near(x, 0) || !near(y, 0) || z < 0 || z > 1 {
		t.Fatalf("expected target at screen centre inside depth range, got (%v, %v, %v)", x, y, z)
	}

	nearPlane := [4]float32{0, 1.5, 1 - cam.Near(), 1}
	var clip [4]float32
	for row := range 4 {
		for col := range 4 {
			clip[row] += vp[col*4+row] * nearPlane[col]
		}
	}
	if d := clip[2] / clip[3]; !near(d, 0) {
		t.Fatalf("expected the near plane at depth 0, got %v", d)
	}

	cam.SetAspect(0)
	if !near(cam.Aspect(), 16.0/9.0) {
		t.Fatalf("zero aspect should be ignored, got %v", cam.Aspect())
	}
	if !near(cam.Fov(), 50*math.Pi/180) {
		t.Fatalf("expected 50 degree fov, got %v", cam.Fov())
	}
}

func TestCameraUniform(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()))
	u := cam.Uniform()
	if u.Size() != 80 {
		t.Fatalf("expected 80 bytes, got %d", u.Size())
	}
	if u.ViewProj != cam.ViewProjectionMatrix() {
		t.Fatalf("uniform should carry the view-projection matrix")
	}

	buf := u.Marshal()
	y := math.Float32frombits(binary.LittleEndian.Uint32(buf[68:72]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(buf[72:76]))
	if y != 1.5 || z != 1 {
		t.Fatalf("expected eye (_, 1.5, 1) at offset 64, got y=%v z=%v", y, z)
	}
	if pad := binary.LittleEndian.Uint32(buf[76:80]); len(buf) != 80 || pad != 0 {
		t.Fatalf("expected 80 bytes with a zero tail word, got %d bytes, pad %#x", len(buf), pad)
	}

	if NewCamera().Uniform().CameraPosition != [3]float32{} {
		t.Fatalf("camera without controller should report the origin")
	}
}
