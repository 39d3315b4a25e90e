// Package object holds the game entities and their per-frame kinematics.
package object

import (
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Field is the playable area in logical units.
type Field struct {
	Width  float64
	Height float64
}

// NewField creates a field of the given size.
func NewField(width, height int) Field {
	return Field{Width: float64(width), Height: float64(height)}
}

// Center returns the middle of the field.
func (f Field) Center() (float64, float64) {
	return f.Width / 2, f.Height / 2
}

// WrapPosition wraps x and y around the field boundaries (toroidal topology).
// Results always lie in [0, Width) x [0, Height). Folding keeps the overshoot,
// so it differs from resetting to the opposite edge by at most one frame's
// travel.
func (f Field) WrapPosition(x, y *float64) {
	*x = physics.Wrap(*x, f.Width)
	*y = physics.Wrap(*y, f.Height)
}

// Contains reports whether a point lies within the field, edges included.
func (f Field) Contains(x, y float64) bool {
	return x >= 0 && x <= f.Width && y >= 0 && y <= f.Height
}

// Controls is the steering part of a frame's input.
type Controls struct {
	TurnLeft      bool
	TurnRight     bool
	ThrustForward bool
	ThrustBack    bool
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Controls Controls
	Field    Field
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one fixed frame. Returns true if the
	// object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto the terminal canvas.
	Draw(c *draw.Canvas)
}

// Collider is a circle that takes part in collision checks.
type Collider interface {
	GetPosition() (float64, float64)
	GetRadius() float64
}

var (
	_ Collider = (*Ship)(nil)
	_ Collider = (*Asteroid)(nil)
)

// Destructible is implemented by objects that can be destroyed by a collision.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the frame.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// UpdateAll advances every object in place and returns the survivors,
// reusing the backing array.
func UpdateAll[T Object](objects []T, ctx UpdateContext) []T {
	kept := objects[:0]
	for _, obj := range objects {
		if !obj.Update(ctx) {
			kept = append(kept, obj)
		}
	}
	clear(objects[len(kept):])
	return kept
}

// RemoveDestroyed drops destroyed objects, reusing the backing array.
func RemoveDestroyed[T Destructible](objects []T) []T {
	kept := objects[:0]
	for _, obj := range objects {
		if !obj.IsDestroyed() {
			kept = append(kept, obj)
		}
	}
	clear(objects[len(kept):])
	return kept
}

// ShouldRenderBlink returns true if an invulnerable object should be drawn
// this frame, alternating every periodMillis of wall-clock time.
func ShouldRenderBlink(invulnerable bool, nowMillis, periodMillis int64) bool {
	if !invulnerable || periodMillis <= 0 {
		return true
	}
	return (nowMillis/periodMillis)%2 == 0
}
