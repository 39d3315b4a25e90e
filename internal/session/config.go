package session

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Scoring
const (
	AsteroidScore = 10
)

// Player
const (
	InitialLives            = 3
	InvulnerabilityDuration = 3 * time.Second
	FireInterval            = 150 * time.Millisecond // Minimum time between accepted shots
	BlinkPeriodMillis       = 100                    // Invulnerable ship blink phase
)

// Levels
const (
	InitialAsteroidTarget = 5
	AnnouncementFrames    = 120 // Level banner lifetime, fading linearly
	TempoStep             = 0.1 // Ambient tempo gained per level
	MaxTempo              = 2.0
)

// Screen fade-in after a reset.
const (
	FadeStep = 0.02
)

// Collision broad phase. Must be >= the largest asteroid radius.
const collisionGridCellSize = 50.0
