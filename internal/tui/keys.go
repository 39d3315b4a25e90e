package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

type action int

const (
	actNone action = iota
	actLeft
	actRight
	actThrust
	actReverse
	actFire
	actStart
	actReset
	actMute
	actQuit
	numActions
)

// actionFor maps a key event to a game action.
func actionFor(k tcell.Key, r rune) action {
	switch k {
	case tcell.KeyLeft:
		return actLeft
	case tcell.KeyRight:
		return actRight
	case tcell.KeyUp:
		return actThrust
	case tcell.KeyDown:
		return actReverse
	case tcell.KeyEnter:
		return actStart
	case tcell.KeyEscape:
		return actReset
	case tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyRune:
	default:
		return actNone
	}

	switch r {
	case 'a', 'A', 'j', 'J':
		return actLeft
	case 'd', 'D', 'l', 'L':
		return actRight
	case 'w', 'W', 'i', 'I':
		return actThrust
	case 's', 'S', 'k', 'K':
		return actReverse
	case ' ':
		return actFire
	case 'm', 'M':
		return actMute
	case 'q', 'Q':
		return actQuit
	}
	return actNone
}

// heldKeys remembers when each action was last pressed. Terminals send no
// key releases, so an action is held while its auto-repeat keeps arriving.
type heldKeys struct {
	last [numActions]time.Time
}

func (h *heldKeys) press(a action, now time.Time) {
	if a > actNone && a < numActions {
		h.last[a] = now
	}
}

func (h *heldKeys) held(a action, now time.Time) bool {
	return now.Sub(h.last[a]) < input.KeyHoldDuration
}

func (h *heldKeys) reset() {
	h.last = [numActions]time.Time{}
}

func (h *heldKeys) intent(now time.Time) session.Intent {
	return session.Intent{
		TurnLeft:      h.held(actLeft, now),
		TurnRight:     h.held(actRight, now),
		ThrustForward: h.held(actThrust, now),
		ThrustBack:    h.held(actReverse, now),
		Fire:          h.held(actFire, now),
		Start:         h.held(actStart, now),
		Reset:         h.held(actReset, now),
	}
}
