package session

import (
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// resolveCollisions checks bullets against asteroids and asteroids against
// the ship, then compacts the destroyed entities out of the collections.
//
// Asteroids are visited in collection order. Each asteroid takes the
// lowest-index live bullet inside its radius, so a bullet never scores
// twice and an asteroid never absorbs more than one bullet per frame.
func (s *Session) resolveCollisions() {
	s.grid.Clear()
	for i, b := range s.bullets {
		s.grid.Insert(b.X, b.Y, i)
	}

	for _, a := range s.asteroids {
		ax, ay := a.GetPosition()
		if hit := s.bulletHitting(a); hit >= 0 {
			s.bullets[hit].MarkDestroyed()
			a.MarkDestroyed()
			s.explosions = append(s.explosions, object.NewExplosion(ax, ay))
			s.score += AsteroidScore
			s.emit(Event{Kind: EventAsteroidDestroyed, X: ax, Y: ay})
			continue
		}

		if s.invulnerable {
			continue
		}
		if overlaps(s.ship, a) && s.hitShipLocked() {
			break
		}
	}

	s.asteroids = object.RemoveDestroyed(s.asteroids)
	s.bullets = object.RemoveDestroyed(s.bullets)
}

// bulletHitting returns the lowest index of a live bullet strictly inside a,
// or -1.
func (s *Session) bulletHitting(a *object.Asteroid) int {
	ax, ay := a.GetPosition()
	radius := a.GetRadius()
	hit := -1
	s.grid.QueryAround(ax, ay, func(i int) bool {
		if hit >= 0 && i > hit {
			return false
		}
		b := s.bullets[i]
		if b.IsDestroyed() {
			return false
		}
		if physics.PointInCircle(b.X, b.Y, ax, ay, radius) {
			hit = i
		}
		return false
	})
	return hit
}

// overlaps reports whether two collidable circles strictly intersect.
func overlaps(p, q object.Collider) bool {
	px, py := p.GetPosition()
	qx, qy := q.GetPosition()
	return physics.CirclesOverlap(px, py, p.GetRadius(), qx, qy, q.GetRadius())
}
