package object

import (
	"math"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Ship tuning, in logical units per frame.
const (
	ShipAcceleration  = 0.05
	ShipMaxSpeed      = 3.0
	ShipTurnRate      = 0.05 // Radians per frame
	ShipDrag          = 0.98 // Speed multiplier applied every frame
	ShipReverseFactor = 0.6  // Reverse thrust relative to forward
	ShipRadius        = 10.0 // Collision radius
)

// Ship is the player-controlled spaceship.
// Speed is signed: negative values move the ship backwards.
type Ship struct {
	X, Y  float64 // Position (center of ship)
	Angle float64 // Heading in radians (0 = pointing right)
	Speed float64

	Acceleration float64
	MaxSpeed     float64
	TurnRate     float64
	Drag         float64
}

// NewShip creates a ship at rest at the given position.
func NewShip(x, y float64) *Ship {
	return &Ship{
		X:            x,
		Y:            y,
		Acceleration: ShipAcceleration,
		MaxSpeed:     ShipMaxSpeed,
		TurnRate:     ShipTurnRate,
		Drag:         ShipDrag,
	}
}

// Reset moves the ship to (x, y) with zero speed and heading.
func (s *Ship) Reset(x, y float64) {
	s.X = x
	s.Y = y
	s.Angle = 0
	s.Speed = 0
}

// Update handles rotation, thrust, drag and wrap-around for one frame.
func (s *Ship) Update(ctx UpdateContext) bool {
	in := ctx.Controls

	if in.TurnLeft {
		s.Angle -= s.TurnRate
	}
	if in.TurnRight {
		s.Angle += s.TurnRate
	}
	if in.ThrustForward {
		s.Speed += s.Acceleration
	}
	if in.ThrustBack {
		s.Speed -= s.Acceleration * ShipReverseFactor
	}

	s.Speed = physics.Clamp(s.Speed, -s.MaxSpeed, s.MaxSpeed)
	s.X, s.Y = physics.Advance(s.X, s.Y, s.Angle, s.Speed)
	s.Speed *= s.Drag

	ctx.Field.WrapPosition(&s.X, &s.Y)
	return false
}

// GetPosition returns the ship's center position.
func (s *Ship) GetPosition() (float64, float64) {
	return s.X, s.Y
}

// GetRadius returns the ship's collision radius.
func (s *Ship) GetRadius() float64 {
	return ShipRadius
}

// Draw renders the ship as a triangle pointing along its heading.
func (s *Ship) Draw(c *draw.Canvas) {
	const size = ShipRadius * 1.5
	// Wings sit ~143 degrees either side of the nose.
	leftAngle := s.Angle + 2.5
	rightAngle := s.Angle - 2.5

	triangle := c.BorrowPoints(3)
	triangle[0] = draw.Point{X: s.X + math.Cos(s.Angle)*size, Y: s.Y + math.Sin(s.Angle)*size}
	triangle[1] = draw.Point{X: s.X + math.Cos(leftAngle)*size*0.7, Y: s.Y + math.Sin(leftAngle)*size*0.7}
	triangle[2] = draw.Point{X: s.X + math.Cos(rightAngle)*size*0.7, Y: s.Y + math.Sin(rightAngle)*size*0.7}

	c.DrawPolygon(triangle, true)
}
