package scene

import "github.com/go-gl/mathgl/mgl32"

// HiddenTorch is where the torch light is parked while it is not in hand.
var HiddenTorch = mgl32.Vec3{0, -50, 0}

// Options configures a new State.
type Options struct {
	Seed        uint64
	CaptureLoss CaptureLossPolicy // nil pauses on every capture loss
	StartGrace  float64           // seconds; 0 uses DefaultStartGrace
	CullFace    bool
}

// State is all mutable scene state. The frame driver owns it: Update takes it
// exclusively, renderers read a Snapshot.
type State struct {
	Mode   Mode
	Time   float64 // seconds of simulated time
	Ticks  uint64
	Camera Camera
	Torch  mgl32.Vec3
	Debris []Debris
	Birds  []Bird

	// CullFace is the default face-culling state passes return to.
	CullFace bool

	modes modeMachine
	rng   *Rand
}

// NewState returns the scene at startup, in the menu.
func NewState(opts Options) *State {
	policy := opts.CaptureLoss
	if policy == nil {
		policy = func() bool { return true }
	}
	grace := opts.StartGrace
	if grace <= 0 {
		grace = DefaultStartGrace
	}
	s := &State{
		Mode:     ModeMenu,
		Camera:   NewCamera(),
		Torch:    HiddenTorch,
		Debris:   InitialDebris(),
		Birds:    InitialBirds(),
		CullFace: opts.CullFace,
		modes:    modeMachine{mode: ModeMenu, policy: policy, grace: grace},
		rng:      NewRand(opts.Seed),
	}
	s.Camera.UpdateMenu(0)
	return s
}

// Update advances the scene by one tick of dt seconds.
func (s *State) Update(dt float64, in Input) Transition {
	s.Time += dt
	s.Ticks++

	tr := s.modes.step(s.Time, in)
	s.Mode = tr.To

	switch s.Mode {
	case ModePlaying:
		if !tr.Changed() {
			s.Camera.Look(in.YawDelta, in.PitchDelta)
		}
		s.Camera.UpdatePlaying(in)
		s.Torch = s.Camera.Torch()
	default:
		s.Camera.UpdateMenu(s.Time)
		s.Torch = HiddenTorch
	}

	for i := range s.Debris {
		s.Debris[i].Step(s.rng)
	}
	for i := range s.Birds {
		s.Birds[i].Step()
	}
	return tr
}

// Snapshot is a read-only copy of what a frame needs to draw.
type Snapshot struct {
	Mode     Mode
	Time     float32
	Camera   Camera
	Torch    mgl32.Vec3
	Debris   []Debris
	Birds    []Bird
	CullFace bool
}

// Snapshot copies the drawable state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Mode:     s.Mode,
		Time:     float32(s.Time),
		Camera:   s.Camera,
		Torch:    s.Torch,
		Debris:   append([]Debris(nil), s.Debris...),
		Birds:    append([]Bird(nil), s.Birds...),
		CullFace: s.CullFace,
	}
}
