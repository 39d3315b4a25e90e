package object

import (
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// BulletSpeed is the fixed bullet speed in units per frame.
const BulletSpeed = 5.0

// Bullet is a shot fired by the ship. Bullets do not wrap: once they leave
// the field they are removed.
type Bullet struct {
	X, Y      float64
	Angle     float64
	Speed     float64
	destroyed bool
}

// NewBullet creates a bullet at (x, y) traveling along angle.
func NewBullet(x, y, angle float64) *Bullet {
	return &Bullet{
		X:     x,
		Y:     y,
		Angle: angle,
		Speed: BulletSpeed,
	}
}

// Update moves the bullet and reports whether it left the field.
func (b *Bullet) Update(ctx UpdateContext) bool {
	b.X, b.Y = physics.Advance(b.X, b.Y, b.Angle, b.Speed)
	return !ctx.Field.Contains(b.X, b.Y)
}

// Draw renders the bullet as a single pixel.
func (b *Bullet) Draw(c *draw.Canvas) {
	c.SetFloat(b.X, b.Y)
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}
