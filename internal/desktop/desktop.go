// Package desktop plays a session in an ebiten window.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

// Debug font cell size, for centering text.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	colorAsteroid  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorBullet    = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	colorShip      = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	colorExplosion = color.NRGBA{R: 255, G: 140, B: 40, A: 255}
)

// Options configures the window. Zero values select defaults.
type Options struct {
	Audio  audio.Player
	Logger *log.Logger
	Now    func() time.Time
}

// Game implements ebiten.Game for one session.
type Game struct {
	sess  *session.Session
	opts  Options
	field object.Field
	now   time.Time
}

// New creates the window game for sess.
func New(sess *session.Session, opts Options) *Game {
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Game{sess: sess, opts: opts, field: sess.Snapshot().Field}
}

// Run opens the window and blocks until it is closed.
func Run(sess *session.Session, opts Options) error {
	g := New(sess, opts)
	ebiten.SetWindowSize(int(g.field.Width), int(g.field.Height))
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update advances the session one fixed frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		muted := g.opts.Audio.ToggleMute()
		g.opts.Logger.Debug("mute toggled", "muted", muted)
	}

	g.now = g.opts.Now()
	events := g.sess.Tick(g.now, intentFromKeys(ebiten.IsKeyPressed))
	g.opts.Audio.Handle(events)
	g.opts.Audio.SetTempo(g.sess.Snapshot().Tempo)
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sess.Snapshot()

	for _, a := range snap.Asteroids {
		vector.StrokeCircle(screen, float32(a.X), float32(a.Y), float32(a.Radius), 1.5, colorAsteroid, true)
	}
	for _, b := range snap.Bullets {
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), 2, colorBullet, true)
	}
	for _, e := range snap.Explosions {
		c := colorExplosion
		c.A = uint8(255 * (1 - e.Progress()))
		vector.StrokeCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), 2, c, true)
	}
	if snap.State.Playing() && object.ShouldRenderBlink(snap.Invulnerable, g.now.UnixMilli(), session.BlinkPeriodMillis) {
		pts := shipPoints(snap.Ship)
		for i := range pts {
			p, q := pts[i], pts[(i+1)%len(pts)]
			vector.StrokeLine(screen, p[0], p[1], q[0], q[1], 2, colorShip, true)
		}
	}

	g.drawUI(screen, snap)

	if snap.Fade > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(g.field.Width), float32(g.field.Height), fadeColor(snap.Fade), false)
	}
}

// Layout keeps the logical field size regardless of window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.field.Width), int(g.field.Height)
}

func (g *Game) drawUI(screen *ebiten.Image, snap session.Snapshot) {
	w, h := int(g.field.Width), int(g.field.Height)

	switch snap.State {
	case session.StateNotStarted:
		centered(screen, "A S T E R O I D S", w/2, h/2-48)
		centered(screen, "Press ENTER to Start", w/2, h/2)
		if snap.HighScore > 0 {
			centered(screen, fmt.Sprintf("High Score: %d", snap.HighScore), w/2, h/2+24)
		}
		centered(screen, "Arrows/WASD to fly, SPACE to shoot, M to mute, Q to quit", w/2, h/2+64)
		return
	case session.StateGameOver:
		centered(screen, "GAME OVER", w/2, h/2-32)
		centered(screen, fmt.Sprintf("Final Score: %d", snap.Score), w/2, h/2)
		if snap.NewRecord {
			centered(screen, "New High Score!", w/2, h/2+16)
		}
		centered(screen, "Press ESC to play again", w/2, h/2+32)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 20, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("High: %d", snap.HighScore), 20, 28)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level: %d", snap.Level), w-100, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Lives: %d", snap.Lives), w-100, 28)
	if g.opts.Audio.Muted() {
		ebitenutil.DebugPrintAt(screen, "[muted]", w-100, 44)
	}
	if snap.Announcement != "" && snap.AnnouncementFade > 0.1 {
		centered(screen, snap.Announcement, w/2, h/2)
	}
}

func centered(screen *ebiten.Image, s string, cx, cy int) {
	ebitenutil.DebugPrintAt(screen, s, cx-len(s)*glyphWidth/2, cy-glyphHeight/2)
}

// intentFromKeys samples held keys. Arrows and WASD both steer.
func intentFromKeys(pressed func(ebiten.Key) bool) session.Intent {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return session.Intent{
		TurnLeft:      held(ebiten.KeyArrowLeft, ebiten.KeyA),
		TurnRight:     held(ebiten.KeyArrowRight, ebiten.KeyD),
		ThrustForward: held(ebiten.KeyArrowUp, ebiten.KeyW),
		ThrustBack:    held(ebiten.KeyArrowDown, ebiten.KeyS),
		Fire:          pressed(ebiten.KeySpace),
		Start:         pressed(ebiten.KeyEnter),
		Reset:         pressed(ebiten.KeyEscape),
	}
}

// shipPoints returns the ship outline: nose, left wing, right wing.
func shipPoints(s object.Ship) [3][2]float32 {
	const size = object.ShipRadius * 1.5
	pt := func(angle, length float64) [2]float32 {
		return [2]float32{
			float32(s.X + math.Cos(angle)*length),
			float32(s.Y + math.Sin(angle)*length),
		}
	}
	return [3][2]float32{
		pt(s.Angle, size),
		pt(s.Angle+2.5, size*0.7),
		pt(s.Angle-2.5, size*0.7),
	}
}

// fadeColor is the black overlay drawn while the field fades in.
func fadeColor(fade float64) color.RGBA {
	return color.RGBA{A: uint8(255 * min(max(fade, 0), 1))}
}
