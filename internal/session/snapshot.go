package session

import "github.com/tomz197/asteroids-arcade/internal/object"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State        State
	Field        object.Field
	Ship         object.Ship
	Asteroids    []object.Asteroid
	Bullets      []object.Bullet
	Explosions   []object.Explosion
	Score        int
	HighScore    int
	NewRecord    bool // Set at game over when Score beat the old high score
	Level        int
	Lives        int
	Invulnerable bool

	Announcement     string  // Empty when no banner is shown
	AnnouncementFade float64 // 1 when the banner appears, falling to 0
	Tempo            float64 // Ambient music rate multiplier
	Fade             float64 // Screen fade-in overlay opacity
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:        s.stateLocked(),
		Field:        s.field,
		Ship:         *s.ship,
		Asteroids:    make([]object.Asteroid, len(s.asteroids)),
		Bullets:      make([]object.Bullet, len(s.bullets)),
		Explosions:   make([]object.Explosion, len(s.explosions)),
		Score:        s.score,
		HighScore:    s.highScore,
		NewRecord:    s.newRecord,
		Level:        s.level,
		Lives:        s.lives,
		Invulnerable: s.invulnerable,
		Tempo:        s.tempo,
		Fade:         s.fade,
	}
	for i, a := range s.asteroids {
		snap.Asteroids[i] = *a
	}
	for i, b := range s.bullets {
		snap.Bullets[i] = *b
	}
	for i, e := range s.explosions {
		snap.Explosions[i] = *e
	}
	if s.announce > 0 {
		snap.Announcement = s.announceMsg
		snap.AnnouncementFade = float64(s.announce) / AnnouncementFrames
	}
	return snap
}
