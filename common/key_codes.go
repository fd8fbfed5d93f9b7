package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyD     = 68  // D key (ASCII): reload default track and audio
	KeyL     = 76  // L key (ASCII): toggle looping
	KeyR     = 82  // R key (ASCII): reset camera
	KeySpace = 32  // Spacebar (ASCII): start/stop playback
	KeyEsc   = 256 // Escape key (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Mouse buttons, matching GLFW button numbers.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// PresetSlot maps the number keys 1-9 to a zero-based preset index.
//
// Parameters:
//   - key: the key code
//
// Returns:
//   - int: the preset index
//   - bool: false if key is not 1-9
func PresetSlot(key int) (int, bool) {
	if key < Key1 || key > Key9 {
		return 0, false
	}
	return key - Key1, true
}
