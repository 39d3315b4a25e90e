package object

import (
	"math"
	"math/rand"
	"time"
)

// Asteroid speed curve: the floor rises linearly with level and a random
// jitter band is added on top.
const (
	AsteroidBaseSpeed  = 1.0
	AsteroidLevelSpeed = 0.05
	AsteroidSpeedJit   = 1.5
)

// MinAsteroidSpeed returns the slowest speed an asteroid can have at level.
func MinAsteroidSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	return AsteroidBaseSpeed + AsteroidLevelSpeed*float64(level-1)
}

// Spawner creates asteroids with random kinematics scaled by level.
type Spawner struct {
	field Field
	rng   *rand.Rand
}

// NewSpawner creates a spawner for the field. A nil rng is seeded from the clock.
func NewSpawner(field Field, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{field: field, rng: rng}
}

// Asteroid creates one asteroid at a random position in the field.
func (s *Spawner) Asteroid(level int) *Asteroid {
	return &Asteroid{
		X:      s.rng.Float64() * s.field.Width,
		Y:      s.rng.Float64() * s.field.Height,
		Radius: AsteroidMinRadius + s.rng.Float64()*(AsteroidMaxRadius-AsteroidMinRadius),
		Angle:  s.rng.Float64() * 2 * math.Pi,
		Speed:  MinAsteroidSpeed(level) + s.rng.Float64()*AsteroidSpeedJit,
	}
}

// Asteroids appends n new asteroids for level to dst.
func (s *Spawner) Asteroids(dst []*Asteroid, level, n int) []*Asteroid {
	for i := 0; i < n; i++ {
		dst = append(dst, s.Asteroid(level))
	}
	return dst
}
