package player

// State is the player's discrete motion state. Exactly one is active.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateJumping
	StateFalling
	StateGliding
	StateGlideTurning
	StateGlideSpinning
	StatePoleSwinging
	StateDead
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateRunning:       "running",
	StateJumping:       "jumping",
	StateFalling:       "falling",
	StateGliding:       "gliding",
	StateGlideTurning:  "glide_turning",
	StateGlideSpinning: "glide_spinning",
	StatePoleSwinging:  "pole_swinging",
	StateDead:          "dead",
}

// String doubles as the animation name for the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// InGlideFamily reports whether s is one of the glide states.
func (s State) InGlideFamily() bool {
	return s == StateGliding || s == StateGlideTurning || s == StateGlideSpinning
}

// overridesPhysics reports whether per-frame classification leaves s alone.
func (s State) overridesPhysics() bool {
	return s.InGlideFamily() || s == StatePoleSwinging || s == StateDead
}
