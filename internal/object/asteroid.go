package object

import (
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Asteroid size range.
const (
	AsteroidMinRadius = 20.0
	AsteroidMaxRadius = 50.0
)

// Asteroid is a drifting rock. It keeps its heading and speed for its whole
// life and wraps around the field edges.
type Asteroid struct {
	X, Y      float64 // Position (center)
	Radius    float64 // Collision/draw radius
	Angle     float64 // Heading in radians
	Speed     float64 // Units per frame
	destroyed bool
}

// Update moves the asteroid one frame along its heading.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	a.X, a.Y = physics.Advance(a.X, a.Y, a.Angle, a.Speed)
	ctx.Field.WrapPosition(&a.X, &a.Y)
	return false
}

// Draw renders the asteroid outline.
func (a *Asteroid) Draw(c *draw.Canvas) {
	c.DrawCircle(a.X, a.Y, a.Radius, 12)
}

// MarkDestroyed marks the asteroid for removal (implements Destructible).
func (a *Asteroid) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for destruction (implements Destructible).
func (a *Asteroid) IsDestroyed() bool {
	return a.destroyed
}

// GetPosition returns the asteroid's center position.
func (a *Asteroid) GetPosition() (float64, float64) {
	return a.X, a.Y
}

// GetRadius returns the asteroid's collision radius.
func (a *Asteroid) GetRadius() float64 {
	return a.Radius
}
