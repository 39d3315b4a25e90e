package object

import "github.com/tomz197/asteroids-arcade/internal/draw"

// Explosion shape.
const (
	ExplosionMaxRadius     = 30.0
	ExplosionExpansionRate = 2.0
)

// Explosion is an expanding ring left behind by a destructive collision.
type Explosion struct {
	X, Y          float64
	Radius        float64
	MaxRadius     float64
	ExpansionRate float64
}

// NewExplosion creates an explosion anchored at (x, y).
func NewExplosion(x, y float64) *Explosion {
	return &Explosion{
		X:             x,
		Y:             y,
		MaxRadius:     ExplosionMaxRadius,
		ExpansionRate: ExplosionExpansionRate,
	}
}

// Update grows the ring; it is removed once it passes its maximum radius.
func (e *Explosion) Update(_ UpdateContext) bool {
	e.Radius += e.ExpansionRate
	return e.Radius > e.MaxRadius
}

// Draw renders the ring outline.
func (e *Explosion) Draw(c *draw.Canvas) {
	c.DrawCircle(e.X, e.Y, e.Radius, 10)
}

// Progress returns how far the ring has expanded, in [0, 1].
func (e *Explosion) Progress() float64 {
	if e.MaxRadius <= 0 {
		return 1
	}
	return min(e.Radius/e.MaxRadius, 1)
}
