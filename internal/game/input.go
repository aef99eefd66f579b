package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"raft/internal/scene"
)

// Input samples the GLFW window once per frame and turns it into a scene.Input.
// It owns pointer capture: the start action requests it, Escape and focus loss
// drop it.
type Input struct {
	Sensitivity float32 // degrees of look per pixel

	prevKeys    map[glfw.Key]bool
	prevMouse   map[glfw.MouseButton]bool
	prevCursorX float64
	prevCursorY float64
	haveCursor  bool
}

func NewInput(sensitivity float32) *Input {
	return &Input{
		Sensitivity: sensitivity,
		prevKeys:    make(map[glfw.Key]bool),
		prevMouse:   make(map[glfw.MouseButton]bool),
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

// Captured reports whether the cursor is locked to the focused window.
func Captured(window *glfw.Window) bool {
	return window.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled &&
		window.GetAttrib(glfw.Focused) == glfw.True
}

func capture(window *glfw.Window) {
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
}

func release(window *glfw.Window) {
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// Sample reads keys, buttons and cursor motion for the current frame.
func (in *Input) Sample(window *glfw.Window, mode scene.Mode) scene.Input {
	var out scene.Input

	start := in.JustPressed(window, glfw.KeySpace)
	start = in.JustPressed(window, glfw.KeyEnter) || start
	click := in.JustClicked(window, glfw.MouseButtonLeft)
	escape := in.JustPressed(window, glfw.KeyEscape)

	if scene.WantCapture(mode, start, click, Captured(window)) {
		capture(window)
		in.haveCursor = false
	}
	switch mode {
	case scene.ModeMenu:
		out.Start = start || click
		if escape {
			window.SetShouldClose(true)
		}
	case scene.ModePlaying:
		if escape {
			out.Release = true
			release(window)
		}
	}
	if window.GetAttrib(glfw.Focused) == glfw.False && window.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled {
		release(window)
	}
	out.Captured = Captured(window)

	cx, cy := window.GetCursorPos()
	if in.haveCursor && out.Captured {
		out.YawDelta = float32(cx-in.prevCursorX) * in.Sensitivity
		out.PitchDelta = -float32(cy-in.prevCursorY) * in.Sensitivity
	}
	in.prevCursorX, in.prevCursorY, in.haveCursor = cx, cy, true

	out.Forward = window.GetKey(glfw.KeyW) == glfw.Press
	out.Back = window.GetKey(glfw.KeyS) == glfw.Press
	out.Left = window.GetKey(glfw.KeyA) == glfw.Press
	out.Right = window.GetKey(glfw.KeyD) == glfw.Press
	return out
}
