package scene

import "fmt"

// Input is an instantaneous snapshot from the input layer. The scene only reads it.
type Input struct {
	// Look deltas in degrees, already scaled by sensitivity. Positive pitch looks up.
	YawDelta, PitchDelta float32

	Forward, Back, Left, Right bool

	// Start is the menu start action; Release is an explicit request to leave play.
	Start, Release bool

	// Captured reports whether the host currently holds exclusive pointer capture.
	Captured bool
}

// Continuation is the snapshot to feed extra ticks of the same frame: held keys
// and capture persist, one-shot deltas and actions do not.
func (in Input) Continuation() Input {
	in.YawDelta, in.PitchDelta = 0, 0
	in.Start, in.Release = false, false
	return in
}

// Merge folds a later snapshot into one not yet consumed by a tick: look deltas
// add up, one-shot actions stick, held keys and capture take the later value.
func (in Input) Merge(next Input) Input {
	next.YawDelta += in.YawDelta
	next.PitchDelta += in.PitchDelta
	next.Start = next.Start || in.Start
	next.Release = next.Release || in.Release
	return next
}

// CaptureLossPolicy decides whether losing exclusive capture while playing
// returns to the menu.
type CaptureLossPolicy func() bool

// Capture-loss policy names.
const (
	CapturePause  = "pause"
	CaptureIgnore = "ignore"
	CaptureAuto   = "auto"
)

// NewCaptureLossPolicy builds a policy by name. "auto" pauses unless the host
// is a touch device, where capture is never held reliably.
func NewCaptureLossPolicy(name string, touchDevice bool) (CaptureLossPolicy, error) {
	switch name {
	case CapturePause:
		return func() bool { return true }, nil
	case CaptureIgnore:
		return func() bool { return false }, nil
	case CaptureAuto, "":
		return func() bool { return !touchDevice }, nil
	}
	return nil, fmt.Errorf("capture-loss policy %q: %w", name, ErrInvalidParameter)
}

// WantCapture reports whether this frame's presses should acquire pointer
// capture: the start action in the menu, or a click while playing without it.
func WantCapture(m Mode, start, click, captured bool) bool {
	switch m {
	case ModeMenu:
		return start || click
	case ModePlaying:
		return click && !captured
	}
	return false
}

// Touch is one active contact point in screen pixels.
type Touch struct {
	ID   int
	X, Y float32
}

// DefaultTouchSensitivity is degrees of look per pixel of finger drag.
const DefaultTouchSensitivity = 0.4

// TouchAdapter turns touch samples into Input: one finger drags the view, two or
// more fingers walk forward while the first finger keeps steering.
type TouchAdapter struct {
	Sensitivity float32

	trackID      int
	lastX, lastY float32
	tracking     bool
}

// Sample converts the current set of touches. Touch hosts never hold pointer
// capture, so Captured is always false.
func (a *TouchAdapter) Sample(touches []Touch) Input {
	var in Input
	if len(touches) == 0 {
		a.tracking = false
		return in
	}

	t := touches[0]
	if a.tracking && t.ID == a.trackID {
		sens := a.Sensitivity
		if sens == 0 {
			sens = DefaultTouchSensitivity
		}
		in.YawDelta = (t.X - a.lastX) * sens
		in.PitchDelta = -(t.Y - a.lastY) * sens
	}
	a.trackID, a.lastX, a.lastY, a.tracking = t.ID, t.X, t.Y, true

	in.Forward = len(touches) >= 2
	return in
}
