package camera

// CameraController defines the orbit controls of the viewer.
//
// The controller keeps spherical coordinates (radius, azimuth, elevation) around a target.
// Orbit and Zoom move the camera on that sphere; Pan slides both camera and target along
// the camera's local axes. The home view given at construction is restored by Reset.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis (0 looks down -Z).
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// Orbit rotates the camera around the target from a mouse drag.
	// Dragging right swings the camera left around the target; dragging down raises it.
	//
	// Parameters:
	//   - dx, dy: cursor movement in pixels
	Orbit(dx, dy float32)

	// Pan slides the camera and target together from a mouse drag, so the scene follows the cursor.
	// The step scales with the orbit radius.
	//
	// Parameters:
	//   - dx, dy: cursor movement in pixels
	Pan(dx, dy float32)

	// Zoom scales the orbit radius. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: scroll steps
	Zoom(delta float32)

	// SetView places the camera at position looking at target without changing the home view.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space look-at point
	SetView(position, target [3]float32)

	// Reset restores the home view.
	Reset()
}
