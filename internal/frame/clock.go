// Package frame drives the scene at a fixed tick rate from variable frame
// times, and renders headless snapshots.
package frame

import "raft/internal/scene"

// MaxTicksPerFrame bounds catch-up after a stall. Time beyond it is dropped.
const MaxTicksPerFrame = 5

// Clock converts frame durations into whole fixed ticks.
type Clock struct {
	Step float64 // seconds per tick
	acc  float64
}

// NewClock returns a clock ticking tickRate times per second.
func NewClock(tickRate int) *Clock {
	return &Clock{Step: 1 / float64(tickRate)}
}

// Advance adds dt seconds and returns the number of ticks now due.
func (c *Clock) Advance(dt float64) int {
	if dt > 0 {
		c.acc += dt
	}
	n := int(c.acc / c.Step)
	if n > MaxTicksPerFrame {
		n = MaxTicksPerFrame
		c.acc = 0
		return n
	}
	c.acc -= float64(n) * c.Step
	return n
}

// Driver feeds frames of input to a scene state through a Clock. Input that
// arrives on a frame with no tick due is held for the next tick, so short
// presses are never lost.
type Driver struct {
	State *scene.State
	Clock *Clock

	pending scene.Input
	held    bool
}

// NewDriver ties a state to a clock.
func NewDriver(s *scene.State, c *Clock) *Driver {
	return &Driver{State: s, Clock: c}
}

// Frame runs the ticks due after dt seconds and returns the mode changes they made.
func (d *Driver) Frame(dt float64, in scene.Input) []scene.Transition {
	if d.held {
		in = d.pending.Merge(in)
	}
	n := d.Clock.Advance(dt)
	if n == 0 {
		d.pending, d.held = in, true
		return nil
	}
	d.pending, d.held = scene.Input{}, false

	var changes []scene.Transition
	for i := 0; i < n; i++ {
		if tr := d.State.Update(d.Clock.Step, in); tr.Changed() {
			changes = append(changes, tr)
		}
		in = in.Continuation()
	}
	return changes
}
