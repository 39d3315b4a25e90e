// Package session owns one game: the entities, score, lives, level and the
// state machine that moves between start screen, play and game over.
package session

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// HighScoreStore persists the single high score scalar.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Field  object.Field
	Clock  Clock
	Rand   *rand.Rand
	Store  HighScoreStore
	Logger *log.Logger
}

// Session is a single game. It is safe for concurrent use; Tick is expected
// to be called from one frame loop while timers fire on other goroutines.
type Session struct {
	mu sync.Mutex

	field   object.Field
	clock   Clock
	spawner *object.Spawner
	store   HighScoreStore
	logger  *log.Logger
	grid    *physics.SpatialGrid

	ship       *object.Ship
	asteroids  []*object.Asteroid
	bullets    []*object.Bullet
	explosions []*object.Explosion

	state     State // Never StateLevelTransition; that is derived
	score     int
	highScore int
	lives     int
	level     int
	target    int // Asteroids spawned for the current level

	newRecord    bool // Score beat the previous high score this game
	invulnerable bool
	invulnTimer  Timer
	invulnGen    uint64 // Bumped on every hit and reset; stale timers compare unequal

	lastShot    time.Time
	hasShot     bool
	announce    int // Frames left on the level banner
	announceMsg string
	tempo       float64
	fade        float64

	events []Event
}

// New creates a session on the start screen with the first level's asteroids
// placed. They stay still until Start. The high score is read from the store
// once.
func New(opts Options) *Session {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.NewField(800, 600)
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		field:   opts.Field,
		clock:   opts.Clock,
		spawner: object.NewSpawner(opts.Field, opts.Rand),
		store:   opts.Store,
		logger:  opts.Logger,
		grid:    physics.NewSpatialGrid(opts.Field.Width, opts.Field.Height, collisionGridCellSize),
		ship:    object.NewShip(opts.Field.Center()),
	}

	if s.store != nil {
		hs, err := s.store.Load()
		if err != nil {
			s.logger.Warn("could not load high score", "err", err)
		} else {
			s.highScore = max(hs, 0)
		}
	}

	s.resetLocked()
	return s
}

// Tick advances the session by one frame at time now and returns the events
// that occurred during it.
func (s *Session) Tick(now time.Time, in Intent) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]

	if in.Start {
		s.startLocked()
	}
	if in.Reset {
		s.resetFromGameOverLocked()
	}

	if s.state == StateActive {
		if in.Fire {
			s.fireLocked(now)
		}
		s.stepLocked(in.Controls())
	}

	if s.fade > 0 {
		s.fade = max(s.fade-FadeStep, 0)
	}

	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Start leaves the start screen. Returns false if the session was not on it.
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

// Reset returns a finished game to the start screen. Returns false unless
// the session is in game over.
func (s *Session) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetFromGameOverLocked()
}

// State returns the current level controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Close stops any pending timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelInvulnerabilityLocked()
}

func (s *Session) stateLocked() State {
	if s.state == StateActive && s.announce > 0 {
		return StateLevelTransition
	}
	return s.state
}

func (s *Session) startLocked() bool {
	if s.state != StateNotStarted {
		return false
	}
	if len(s.asteroids) == 0 {
		s.asteroids = s.spawner.Asteroids(s.asteroids, s.level, s.target)
	}
	s.state = StateActive
	s.logger.Info("game started", "asteroids", len(s.asteroids))
	return true
}

func (s *Session) resetFromGameOverLocked() bool {
	if s.state != StateGameOver {
		return false
	}
	s.logger.Info("game reset", "final_score", s.score)
	s.resetLocked()
	return true
}

// resetLocked restores the initial session state and respawns the first
// level's asteroids.
func (s *Session) resetLocked() {
	s.cancelInvulnerabilityLocked()

	cx, cy := s.field.Center()
	s.ship.Reset(cx, cy)

	clear(s.bullets)
	clear(s.explosions)
	s.bullets = s.bullets[:0]
	s.explosions = s.explosions[:0]

	s.score = 0
	s.newRecord = false
	s.lives = InitialLives
	s.level = 1
	s.target = InitialAsteroidTarget
	s.state = StateNotStarted
	s.hasShot = false
	s.announce = 0
	s.announceMsg = ""
	s.tempo = 1
	s.fade = 1

	clear(s.asteroids)
	s.asteroids = s.spawner.Asteroids(s.asteroids[:0], s.level, s.target)
}

func (s *Session) fireLocked(now time.Time) {
	if s.hasShot && now.Sub(s.lastShot) <= FireInterval {
		return
	}
	s.bullets = append(s.bullets, object.NewBullet(s.ship.X, s.ship.Y, s.ship.Angle))
	s.lastShot = now
	s.hasShot = true
	s.emit(Event{Kind: EventShotFired, X: s.ship.X, Y: s.ship.Y})
}

// stepLocked runs one simulation frame: kinematics first, then collisions.
func (s *Session) stepLocked(controls object.Controls) {
	if s.announce > 0 {
		s.announce--
	}

	ctx := object.UpdateContext{Controls: controls, Field: s.field}
	s.ship.Update(ctx)
	s.asteroids = object.UpdateAll(s.asteroids, ctx)
	s.bullets = object.UpdateAll(s.bullets, ctx)
	s.explosions = object.UpdateAll(s.explosions, ctx)

	s.resolveCollisions()

	if len(s.asteroids) == 0 && s.state != StateGameOver {
		s.advanceLevelLocked()
	}
}

func (s *Session) advanceLevelLocked() {
	s.level++
	s.target = int(math.Ceil(float64(s.target) + 1))
	s.asteroids = s.spawner.Asteroids(s.asteroids, s.level, s.target)

	s.announce = AnnouncementFrames
	s.announceMsg = fmt.Sprintf("LEVEL %d", s.level)
	s.tempo = math.Min(1+float64(s.level-1)*TempoStep, MaxTempo)

	s.logger.Debug("level advanced", "level", s.level, "asteroids", s.target, "tempo", s.tempo)
	s.emit(Event{Kind: EventLevelAdvanced, Level: s.level})
}

// hitShipLocked takes a life. Returns true if the game ended.
func (s *Session) hitShipLocked() bool {
	s.lives--
	s.explosions = append(s.explosions, object.NewExplosion(s.ship.X, s.ship.Y))
	s.emit(Event{Kind: EventShipHit, X: s.ship.X, Y: s.ship.Y})

	if s.lives <= 0 {
		s.lives = 0
		s.gameOverLocked()
		return true
	}

	cx, cy := s.field.Center()
	s.ship.Reset(cx, cy)
	s.startInvulnerabilityLocked()
	s.logger.Debug("ship hit", "lives", s.lives)
	return false
}

func (s *Session) gameOverLocked() {
	s.state = StateGameOver
	s.announce = 0
	s.cancelInvulnerabilityLocked()
	s.commitHighScoreLocked()
	s.logger.Info("game over", "score", s.score, "level", s.level, "high_score", s.highScore)
	s.emit(Event{Kind: EventGameOver, Score: s.score})
}

func (s *Session) commitHighScoreLocked() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	s.newRecord = true
	s.logger.Info("new high score", "score", s.highScore)
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.highScore); err != nil {
		s.logger.Error("could not save high score", "err", err)
	}
}

func (s *Session) startInvulnerabilityLocked() {
	s.cancelInvulnerabilityLocked()
	s.invulnerable = true
	gen := s.invulnGen
	s.invulnTimer = s.clock.AfterFunc(InvulnerabilityDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.invulnGen != gen {
			return
		}
		s.invulnerable = false
		s.invulnTimer = nil
	})
}

func (s *Session) cancelInvulnerabilityLocked() {
	s.invulnGen++
	s.invulnerable = false
	if s.invulnTimer != nil {
		s.invulnTimer.Stop()
		s.invulnTimer = nil
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
