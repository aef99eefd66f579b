package scene

// Mode is the game mode.
type Mode int

const (
	ModeMenu    Mode = iota // cinematic orbit, torch hidden
	ModePlaying             // first-person on the raft
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	}
	return "unknown"
}

// DefaultStartGrace is how long a start request waits for pointer capture
// before play is forced (hosts without capture, e.g. touch screens).
const DefaultStartGrace = 0.1

// Transition records a mode change produced by one tick.
type Transition struct {
	From, To Mode
	Forced   bool // entered play without capture
}

// Changed reports whether the tick switched modes.
func (t Transition) Changed() bool { return t.From != t.To }

// modeMachine owns MENU <-> PLAYING.
type modeMachine struct {
	mode        Mode
	policy      CaptureLossPolicy
	grace       float64
	pending     bool
	requestedAt float64
	wasCaptured bool
}

func (m *modeMachine) step(now float64, in Input) Transition {
	tr := Transition{From: m.mode, To: m.mode}
	switch m.mode {
	case ModeMenu:
		if in.Start && !m.pending {
			m.pending = true
			m.requestedAt = now
		}
		if m.pending {
			switch {
			case in.Captured:
				m.enterPlaying()
			case now-m.requestedAt >= m.grace:
				m.enterPlaying()
				tr.Forced = true
			}
		}
	case ModePlaying:
		switch {
		case in.Release:
			m.mode = ModeMenu
		case m.wasCaptured && !in.Captured && m.policy != nil && m.policy():
			m.mode = ModeMenu
		}
	}
	m.wasCaptured = in.Captured
	tr.To = m.mode
	return tr
}

func (m *modeMachine) enterPlaying() {
	m.mode = ModePlaying
	m.pending = false
}
