package viewer

import (
	"log"

	"github.com/Carmen-Shannon/oxy-face/common"
	"github.com/Carmen-Shannon/oxy-face/engine/camera"
	"github.com/Carmen-Shannon/oxy-face/engine/window"
)

// dragState tracks the mouse button currently dragging the camera.
type dragState struct {
	active bool
	button int
	x, y   int32
}

// bindInput connects window input to the viewer. Callbacks run on the main thread; anything that
// touches the scene or the driver is posted to the render goroutine.
func (v *viewer) bindInput(win window.Window) {
	win.SetKeyDownCallback(v.onKeyDown)
	win.SetMouseDownCallback(v.onMouseDown)
	win.SetMouseUpCallback(v.onMouseUp)
	win.SetMouseMoveCallback(v.onMouseMove)
	win.SetScrollCallback(v.onScroll)
	win.SetDropCallback(v.onDrop)
}

func (v *viewer) onKeyDown(keyCode uint32) {
	key := int(keyCode)
	switch key {
	case common.KeySpace:
		v.post(func() {
			v.driver.Toggle(v.now())
		})
	case common.KeyL:
		v.post(func() {
			v.driver.SetLoop(!v.driver.Loop())
			log.Printf("[Viewer] loop %t", v.driver.Loop())
		})
	case common.KeyD:
		v.ReloadDefaultAnimation()
	case common.KeyR:
		v.withController(func(cc camera.CameraController) { cc.Reset() })
	default:
		if index, ok := common.PresetSlot(key); ok && !v.LoadPreset(index) {
			log.Printf("[Viewer] no preset %d", index+1)
		}
	}
}

func (v *viewer) onMouseDown(button int, x, y int32) {
	switch button {
	case common.MouseButtonLeft, common.MouseButtonRight, common.MouseButtonMiddle:
		v.drag = dragState{active: true, button: button, x: x, y: y}
	}
}

func (v *viewer) onMouseUp(button int, _, _ int32) {
	if v.drag.button == button {
		v.drag.active = false
	}
}

// onMouseMove orbits on a left drag and pans on a right or middle drag.
func (v *viewer) onMouseMove(x, y int32) {
	if !v.drag.active {
		return
	}
	dx, dy := float32(x-v.drag.x), float32(y-v.drag.y)
	v.drag.x, v.drag.y = x, y
	if dx == 0 && dy == 0 {
		return
	}
	if v.drag.button == common.MouseButtonLeft {
		v.withController(func(cc camera.CameraController) { cc.Orbit(dx, dy) })
		return
	}
	v.withController(func(cc camera.CameraController) { cc.Pan(dx, dy) })
}

func (v *viewer) onScroll(delta float32) {
	v.withController(func(cc camera.CameraController) { cc.Zoom(delta) })
}

func (v *viewer) onDrop(paths []string) {
	for _, path := range paths {
		if slot := v.Load(path); slot != SlotNone {
			log.Printf("[Viewer] loading dropped %s as %s", path, slot)
		}
	}
}

// withController runs fn against the camera controller on the render goroutine.
func (v *viewer) withController(fn func(cc camera.CameraController)) {
	v.post(func() {
		if cc := v.scn.Camera().Controller(); cc != nil {
			fn(cc)
		}
	})
}
