package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Jabulani101/GHO57-RACING/internal/hud"
	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

func sceneKey(k glfw.Key) sim.Key {
	switch k {
	case glfw.KeyUp:
		return sim.KeyArrowUp
	case glfw.KeyDown:
		return sim.KeyArrowDown
	case glfw.KeyLeft:
		return sim.KeyArrowLeft
	case glfw.KeyRight:
		return sim.KeyArrowRight
	case glfw.KeyU:
		return sim.KeyUpgrade
	default:
		return sim.KeyUnknown
	}
}

func sceneKeyAction(a glfw.Action) sim.KeyAction {
	switch a {
	case glfw.Repeat:
		return sim.KeyRepeat
	case glfw.Release:
		return sim.KeyRelease
	default:
		return sim.KeyPress
	}
}

// BindKeys forwards the window's key callbacks to bus. Callbacks fire
// from PollEvents on the main thread.
func BindKeys(window *glfw.Window, bus *sim.KeyBus) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := sceneKey(key)
		if k == sim.KeyUnknown {
			return
		}
		bus.Emit(sim.KeyEvent{Key: k, Action: sceneKeyAction(action), Time: glfw.GetTime()})
	})
}

// Cursor returns the pointer normalized for the camera and the cursor in
// framebuffer pixels for hit-testing.
func Cursor(window *glfw.Window, fbW, fbH int) (sim.Pointer, float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	fx, fy := hud.ToFramebuffer(cx, cy, winW, winH, fbW, fbH)
	return hud.NormalizePointer(cx, cy, winW, winH), fx, fy
}
