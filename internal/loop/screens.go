package loop

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

// styles holds the lipgloss styles for one terminal.
type styles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	prompt   lipgloss.Style
	hint     lipgloss.Style
	hud      lipgloss.Style
	lives    lipgloss.Style
	alert    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		renderer: r,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		prompt:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("244")),
		hud:      r.NewStyle().Foreground(lipgloss.Color("252")),
		lives:    r.NewStyle().Foreground(lipgloss.Color("81")),
		alert:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// gray returns a grayscale style, brightness in [0, 1].
func (s styles) gray(brightness float64) lipgloss.Style {
	level := 232 + int(min(max(brightness, 0), 1)*23)
	return s.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(strconv.Itoa(level)))
}

// tint returns the SGR sequence that colors the playfield during the
// fade-in, or "" once it is fully visible.
func (s styles) tint(fade float64) string {
	if fade <= 0 {
		return ""
	}
	level := 232 + int((1-min(fade, 1))*23)
	color := s.renderer.ColorProfile().Color(strconv.Itoa(level))
	if color == nil {
		return ""
	}
	seq := color.Sequence(false)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

const sgrReset = termenv.CSI + termenv.ResetSeq + "m"

// drawFrame draws the current frame.
func (c *Client) drawFrame(snap session.Snapshot, now time.Time) error {
	// On screen transitions, do a full terminal clear so UI elements from
	// the previous screen don't persist.
	if !c.prevStateSeen || snap.State != c.prevState || c.idle != c.wasIdle || snap.Fade > 0 {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
		c.prevState = snap.State
		c.prevStateSeen = true
		c.wasIdle = c.idle
	}

	c.canvas.Clear()
	drawObjects(c, snap, now)

	tint := c.styles.tint(snap.Fade)
	c.chunkWriter.WriteString(tint)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if tint != "" {
		c.chunkWriter.WriteString(sgrReset)
	}

	c.drawUI(snap)
	return c.chunkWriter.Flush()
}

func drawObjects(c *Client, snap session.Snapshot, now time.Time) {
	for i := range snap.Asteroids {
		snap.Asteroids[i].Draw(c.canvas)
	}
	for i := range snap.Bullets {
		snap.Bullets[i].Draw(c.canvas)
	}
	for i := range snap.Explosions {
		snap.Explosions[i].Draw(c.canvas)
	}
	if snap.State.Playing() && object.ShouldRenderBlink(snap.Invulnerable, now.UnixMilli(), session.BlinkPeriodMillis) {
		snap.Ship.Draw(c.canvas)
	}
}

// drawUI draws the UI overlay for the current screen.
func (c *Client) drawUI(snap session.Snapshot) {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	if c.idle {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch snap.State {
	case session.StateNotStarted:
		c.drawStartScreen(snap, centerX, centerY)
	case session.StateActive, session.StateLevelTransition:
		c.drawPlayingHUD(snap)
		if snap.Announcement != "" {
			c.writeCentered(centerX, centerY, c.styles.gray(snap.AnnouncementFade).Render(snap.Announcement))
		}
	case session.StateGameOver:
		c.drawPlayingHUD(snap)
		c.drawGameOverScreen(snap, centerX, centerY)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(snap session.Snapshot, centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, c.styles.title.Render("A S T E R O I D S"))
	c.writeCentered(centerX, centerY, c.styles.prompt.Render("Press ENTER to Start"))
	if snap.HighScore > 0 {
		c.writeCentered(centerX, centerY+2, c.styles.hud.Render(fmt.Sprintf("High Score: %d", snap.HighScore)))
	}
	c.writeCentered(centerX, centerY+4, c.styles.hint.Render(
		"A/D or Arrows to rotate, W/S or Up/Down to thrust, SPACE to shoot, M to mute, Q to quit"))
}

// drawPlayingHUD draws the in-game HUD (score, level, lives).
func (c *Client) drawPlayingHUD(snap session.Snapshot) {
	termWidth := c.canvas.TerminalWidth()

	c.writeAt(2, 1, c.styles.hud.Render(fmt.Sprintf("Score: %d", snap.Score)))
	c.writeAt(2, 2, c.styles.hint.Render(fmt.Sprintf("High: %d", snap.HighScore)))
	c.writeCentered(termWidth/2, 1, c.styles.hud.Render(fmt.Sprintf("Level %d", snap.Level)))

	lives := c.styles.lives.Render(livesText(snap.Lives))
	c.writeAt(termWidth-lipgloss.Width(lives), 1, lives)

	if c.opts.Audio.Muted() {
		muted := c.styles.hint.Render("[muted]")
		c.writeAt(termWidth-lipgloss.Width(muted), 2, muted)
	}
}

// drawGameOverScreen draws the game over overlay.
func (c *Client) drawGameOverScreen(snap session.Snapshot, centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.styles.alert.Render("GAME OVER"))
	c.writeCentered(centerX, centerY, c.styles.prompt.Render(fmt.Sprintf("Final Score: %d", snap.Score)))
	if snap.NewRecord {
		c.writeCentered(centerX, centerY+1, c.styles.title.Render("New High Score!"))
	}
	c.writeCentered(centerX, centerY+3, c.styles.hint.Render("Press ESC to play again, Q to quit"))
}

// drawInactivityScreen warns that the player is about to be disconnected.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, c.styles.alert.Render("Are you still there?"))
	c.writeCentered(centerX, centerY+1, c.styles.hint.Render("Press any key to continue"))
}

func livesText(lives int) string {
	if lives <= 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat(lifeGlyph+" ", lives))
}

// writeAt writes styled text at a 1-based position and marks the cells
// under it for redraw on the next frame.
func (c *Client) writeAt(col, row int, text string) {
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, text)
	c.canvas.Invalidate(col, row, lipgloss.Width(text))
}

func (c *Client) writeCentered(centerX, row int, text string) {
	c.writeAt(centerX-lipgloss.Width(text)/2, row, text)
}
