package session

// State is the level controller's current state.
type State int

const (
	StateNotStarted State = iota
	StateActive
	StateLevelTransition // Active, with a level announcement on screen
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateActive:
		return "active"
	case StateLevelTransition:
		return "level-transition"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Playing reports whether the simulation advances in this state.
func (s State) Playing() bool {
	return s == StateActive || s == StateLevelTransition
}

// Screen folds the level banner into StateActive. Front ends compare screens
// rather than states so held keys survive a level change.
func (s State) Screen() State {
	if s == StateLevelTransition {
		return StateActive
	}
	return s
}
