// Package tui plays a session in a full-screen tcell terminal UI.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

// Options configures the UI. Zero values select defaults.
type Options struct {
	FrameTime time.Duration
	Audio     audio.Player
	Logger    *log.Logger
}

var (
	styleField = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleShip  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHint  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleAlert = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleLives = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// Game draws one session on a tcell screen.
type Game struct {
	screen tcell.Screen
	sess   *session.Session
	opts   Options
	keys   heldKeys
	field  *draw.Canvas // Asteroids, bullets and explosions
	ship   *draw.Canvas
}

// Run opens the terminal and plays sess until the player quits or ctx is
// canceled.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return newGame(screen, sess, opts).run(ctx)
}

func newGame(screen tcell.Screen, sess *session.Session, opts Options) *Game {
	if opts.FrameTime <= 0 {
		opts.FrameTime = time.Second / 60
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	field := sess.Snapshot().Field
	w, h := screen.Size()
	return &Game{
		screen: screen,
		sess:   sess,
		opts:   opts,
		field:  draw.NewScaledCanvas(w, h, field.Width, field.Height),
		ship:   draw.NewScaledCanvas(w, h, field.Width, field.Height),
	}
}

func (g *Game) run(ctx context.Context) error {
	ticker := time.NewTicker(g.opts.FrameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !g.handleEvent(ev, time.Now()) {
				return nil
			}

		case <-ticker.C:
			g.tick(time.Now())
		}
	}
}

// handleEvent records a key press. Returns false when the player quits.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch a := actionFor(ev.Key(), ev.Rune()); a {
		case actQuit:
			return false
		case actMute:
			muted := g.opts.Audio.ToggleMute()
			g.opts.Logger.Debug("mute toggled", "muted", muted)
		default:
			g.keys.press(a, now)
		}

	case *tcell.EventResize:
		w, h := g.screen.Size()
		g.field.Resize(w, h)
		g.ship.Resize(w, h)
		g.screen.Sync()
	}
	return true
}

// tick advances the session one frame and redraws.
func (g *Game) tick(now time.Time) {
	before := g.sess.State()
	events := g.sess.Tick(now, g.keys.intent(now))
	if g.sess.State().Screen() != before.Screen() {
		g.keys.reset()
	}

	snap := g.sess.Snapshot()
	g.opts.Audio.Handle(events)
	g.opts.Audio.SetTempo(snap.Tempo)
	g.draw(snap, now)
}

func (g *Game) draw(snap session.Snapshot, now time.Time) {
	g.screen.Clear()
	g.field.Clear()
	g.ship.Clear()

	for i := range snap.Asteroids {
		snap.Asteroids[i].Draw(g.field)
	}
	for i := range snap.Bullets {
		snap.Bullets[i].Draw(g.field)
	}
	for i := range snap.Explosions {
		snap.Explosions[i].Draw(g.field)
	}
	if snap.State.Playing() && object.ShouldRenderBlink(snap.Invulnerable, now.UnixMilli(), session.BlinkPeriodMillis) {
		snap.Ship.Draw(g.ship)
	}

	fieldStyle := styleField
	if snap.Fade > 0 {
		level := int32(255 * (1 - snap.Fade))
		fieldStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
	}
	g.field.EachCell(func(col, row int, ch rune) {
		g.screen.SetContent(col, row, ch, nil, fieldStyle)
	})
	g.ship.EachCell(func(col, row int, ch rune) {
		g.screen.SetContent(col, row, ch, nil, styleShip)
	})

	g.drawUI(snap)
	g.screen.Show()
}

func (g *Game) drawUI(snap session.Snapshot) {
	w, h := g.screen.Size()
	cx, cy := w/2, h/2

	switch snap.State {
	case session.StateNotStarted:
		g.centered(cx, cy-3, "A S T E R O I D S", styleTitle)
		g.centered(cx, cy, "Press ENTER to Start", styleHUD)
		if snap.HighScore > 0 {
			g.centered(cx, cy+2, fmt.Sprintf("High Score: %d", snap.HighScore), styleHUD)
		}
		g.centered(cx, cy+4, "Arrows/WASD to fly, SPACE to shoot, M to mute, Q to quit", styleHint)
		return
	case session.StateGameOver:
		g.centered(cx, cy-2, "GAME OVER", styleAlert)
		g.centered(cx, cy, fmt.Sprintf("Final Score: %d", snap.Score), styleHUD)
		if snap.NewRecord {
			g.centered(cx, cy+1, "New High Score!", styleTitle)
		}
		g.centered(cx, cy+3, "Press ESC to play again, Q to quit", styleHint)
	}

	g.text(1, 0, fmt.Sprintf("Score: %d", snap.Score), styleHUD)
	g.text(1, 1, fmt.Sprintf("High: %d", snap.HighScore), styleHint)
	g.centered(cx, 0, fmt.Sprintf("Level %d", snap.Level), styleHUD)
	lives := strings.TrimSpace(strings.Repeat("▲ ", snap.Lives))
	g.text(w-len([]rune(lives))-1, 0, lives, styleLives)
	if g.opts.Audio.Muted() {
		g.text(w-8, 1, "[muted]", styleHint)
	}

	if snap.Announcement != "" {
		level := int32(255 * snap.AnnouncementFade)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level)).Bold(true)
		g.centered(cx, cy, snap.Announcement, style)
	}
}

func (g *Game) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) centered(cx, y int, s string, style tcell.Style) {
	g.text(cx-len([]rune(s))/2, y, s, style)
}
