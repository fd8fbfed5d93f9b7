package camera

import (
	"math"
	"sync"
)

// cameraControllerImpl is the implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32
	elevation float32

	homePosition [3]float32
	homeTarget   [3]float32

	minRadius    float32
	maxRadius    float32
	maxElevation float32

	mouseSensitivity float32
	zoomScale        float32
	panSpeed         float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. The home view defaults to (0, 1.5, 1) looking at (0, 1.5, 0).
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		homePosition: [3]float32{0, 1.5, 1},
		homeTarget:   [3]float32{0, 1.5, 0},

		minRadius:    0.05,
		maxRadius:    100.0,
		maxElevation: float32(math.Pi/2 - 0.01),

		mouseSensitivity: 0.005,
		zoomScale:        1.1,
		panSpeed:         0.002,
	}

	for _, option := range options {
		option(cc)
	}

	cc.setView(cc.homePosition, cc.homeTarget)
	return cc
}

// --- internal helpers ---

// setView derives spherical coordinates from a position and target. Caller must hold the mutex.
func (cc *cameraControllerImpl) setView(position, target [3]float32) {
	cc.target = target
	dx := position[0] - target[0]
	dy := position[1] - target[1]
	dz := position[2] - target[2]

	r := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if r < 1e-6 {
		dx, dy, dz, r = 0, 0, 1, 1
	}
	cc.radius = clamp(r, cc.minRadius, cc.maxRadius)
	cc.azimuth = float32(math.Atan2(float64(dx), float64(dz)))
	cc.elevation = clamp(float32(math.Asin(float64(dy/r))), -cc.maxElevation, cc.maxElevation)
	cc.updatePosition()
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up [3]float32) {
	bx := cc.position[0] - cc.target[0]
	by := cc.position[1] - cc.target[1]
	bz := cc.position[2] - cc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)) with worldUp = (0, 1, 0)
	rx, rz := bz, -bx
	rLen := float32(math.Sqrt(float64(rx*rx + rz*rz)))
	if rLen < 1e-8 {
		return
	}
	rx /= rLen
	rz /= rLen

	// up = cross(backward, right)
	right = [3]float32{rx, 0, rz}
	up = [3]float32{by * rz, bz*rx - bx*rz, -by * rx}
	return
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- CameraController methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) Orbit(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.mouseSensitivity
	cc.elevation = clamp(cc.elevation+dy*cc.mouseSensitivity, -cc.maxElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	right, up := cc.localAxes()
	scale := cc.radius * cc.panSpeed
	for i := range 3 {
		offset := -right[i]*dx*scale + up[i]*dy*scale
		cc.target[i] += offset
		cc.position[i] += offset
	}
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	factor := float32(math.Pow(float64(cc.zoomScale), float64(-delta)))
	cc.radius = clamp(cc.radius*factor, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetView(position, target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setView(position, target)
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setView(cc.homePosition, cc.homeTarget)
}
