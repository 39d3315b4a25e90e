package loop

import "time"

// Frame timing.
const (
	targetFPS       = 60
	targetFrameTime = time.Second / targetFPS
)

// Inactivity, for shared hosts. Zero disables.
const (
	DefaultIdleWarn    = 90 * time.Second
	DefaultIdleTimeout = 120 * time.Second
)

// Lives are drawn as this glyph in the HUD.
const lifeGlyph = "▲"
