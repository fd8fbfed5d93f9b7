package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithHome sets the home view the controller starts at and returns to on Reset.
//
// Parameters:
//   - position: world-space camera position
//   - target: world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the home view
func WithHome(position, target [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.homePosition = position
		cc.homeTarget = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithMouseSensitivity sets the orbit drag sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomScale sets the radius factor applied per scroll step.
// Values <= 1 are ignored.
//
// Parameters:
//   - scale: radius divisor per step
//
// Returns:
//   - CameraControllerOption: functional option to set zoom scale
func WithZoomScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if scale > 1 {
			cc.zoomScale = scale
		}
	}
}

// WithPanSpeed sets the pan step per pixel, as a fraction of the orbit radius.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
