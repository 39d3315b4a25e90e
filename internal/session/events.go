package session

import "fmt"

// EventKind identifies a discrete game occurrence.
type EventKind int

const (
	EventShotFired EventKind = iota
	EventAsteroidDestroyed
	EventShipHit
	EventLevelAdvanced
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventShotFired:
		return "shot-fired"
	case EventAsteroidDestroyed:
		return "asteroid-destroyed"
	case EventShipHit:
		return "ship-hit"
	case EventLevelAdvanced:
		return "level-advanced"
	case EventGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted once per occurrence, never per frame.
type Event struct {
	Kind EventKind
	X, Y float64 // Where it happened, if anywhere
	// Level is set for EventLevelAdvanced, Score for EventGameOver.
	Level int
	Score int
}
