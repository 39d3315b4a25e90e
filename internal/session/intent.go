package session

import "github.com/tomz197/asteroids-arcade/internal/object"

// Intent is the input sampled once per frame.
type Intent struct {
	TurnLeft      bool
	TurnRight     bool
	ThrustForward bool
	ThrustBack    bool
	Fire          bool
	Start         bool
	Reset         bool
}

// Controls returns the steering part of the intent.
func (in Intent) Controls() object.Controls {
	return object.Controls{
		TurnLeft:      in.TurnLeft,
		TurnRight:     in.TurnRight,
		ThrustForward: in.ThrustForward,
		ThrustBack:    in.ThrustBack,
	}
}
