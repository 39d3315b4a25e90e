package config

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults used when the environment does not override them.
const (
	DefaultFieldWidth    = 800
	DefaultFieldHeight   = 600
	DefaultHighScorePath = "highscore.msgpack"
	DefaultFrameTime     = time.Second / 60
	DefaultLogLevel      = "info"
)

// Settings is the runtime configuration shared by all binaries.
type Settings struct {
	FieldWidth    int           // Logical playfield width
	FieldHeight   int           // Logical playfield height
	HighScorePath string        // Empty keeps the high score in memory only
	Muted         bool          // Start with audio muted
	FrameTime     time.Duration // Fixed simulation step
	LogLevel      log.Level
	LogFile       string // Terminal front ends log here instead of stderr
}

// Load reads Settings from the environment.
func Load() Settings {
	s := Settings{
		FieldWidth:    GetEnvInt("ASTEROIDS_FIELD_WIDTH", DefaultFieldWidth),
		FieldHeight:   GetEnvInt("ASTEROIDS_FIELD_HEIGHT", DefaultFieldHeight),
		HighScorePath: GetEnv("ASTEROIDS_HIGHSCORE_PATH", DefaultHighScorePath),
		Muted:         GetEnvBool("ASTEROIDS_MUTED", false),
		FrameTime:     GetEnvDuration("ASTEROIDS_FRAME_TIME", DefaultFrameTime),
		LogFile:       GetEnv("ASTEROIDS_LOG_FILE", ""),
		LogLevel:      parseLevel(GetEnv("ASTEROIDS_LOG_LEVEL", DefaultLogLevel)),
	}

	if s.FieldWidth <= 0 {
		s.FieldWidth = DefaultFieldWidth
	}
	if s.FieldHeight <= 0 {
		s.FieldHeight = DefaultFieldHeight
	}
	if s.FrameTime <= 0 {
		s.FrameTime = DefaultFrameTime
	}
	return s
}

func parseLevel(value string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
