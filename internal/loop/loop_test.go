package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func newTestSession() *session.Session {
	return session.New(session.Options{
		Field: object.NewField(800, 600),
		Clock: session.NewManualClock(time.Unix(0, 0)),
		Rand:  rand.New(rand.NewSource(1)),
	})
}

// silentStream is an input stream that never delivers a byte.
func silentStream(t *testing.T) *input.Stream {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return input.StartStream(bufio.NewReader(pr))
}

func newTestClient(t *testing.T, sess *session.Session, out *bytes.Buffer, opts Options) *Client {
	t.Helper()
	opts.TermSizeFunc = fixedSize(100, 30)
	opts.Renderer = plainRenderer()
	return NewClient(sess, silentStream(t), out, opts)
}

func TestRunStopsWhenInputEnds(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Run(ctx, newTestSession(), bufio.NewReader(strings.NewReader("")), &out, Options{
		FrameTime:    time.Millisecond,
		TermSizeFunc: fixedSize(80, 24),
		Renderer:     plainRenderer(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run did not stop on end of input")
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor not restored")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	c := newTestClient(t, newTestSession(), &out, Options{FrameTime: time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}

func TestFrameDrawsStartScreenAndHUD(t *testing.T) {
	var out bytes.Buffer
	sess := newTestSession()
	c := newTestClient(t, sess, &out, Options{})
	now := time.Unix(100, 0)

	if err := c.frame(now); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"A S T E R O I D S", "Press ENTER to Start"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("start screen missing %q", want)
		}
	}

	out.Reset()
	sess.Start()
	if err := c.frame(now.Add(16 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Score: 0", "Level 1", "▲ ▲ ▲"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("HUD missing %q", want)
		}
	}
	if strings.Contains(out.String(), "Press ENTER") {
		t.Error("start prompt still drawn during play")
	}
}

func TestGameOverScreen(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, newTestSession(), &out, Options{})

	c.drawUI(session.Snapshot{State: session.StateGameOver, Score: 50, HighScore: 50, NewRecord: true, Level: 2})
	if err := c.chunkWriter.Flush(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"GAME OVER", "Final Score: 50", "New High Score!", "Press ESC"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestTiedHighScoreIsNotARecord(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, newTestSession(), &out, Options{})

	c.drawUI(session.Snapshot{State: session.StateGameOver, Score: 50, HighScore: 50, Level: 2})
	c.chunkWriter.Flush()
	if strings.Contains(out.String(), "New High Score!") {
		t.Error("tying the high score should not show the record banner")
	}
}

func TestLevelAnnouncementDrawn(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, newTestSession(), &out, Options{})

	c.drawUI(session.Snapshot{State: session.StateLevelTransition, Level: 3, Lives: 2, Announcement: "LEVEL 3", AnnouncementFade: 0.5})
	c.chunkWriter.Flush()
	if !strings.Contains(out.String(), "LEVEL 3") {
		t.Error("level announcement not drawn")
	}
}

func TestIdleWarningAndTimeout(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, newTestSession(), &out, Options{IdleWarn: time.Second, IdleTimeout: 2 * time.Second})
	start := time.Unix(0, 0)
	c.lastInput = start

	c.processInput(input.Input{}, start.Add(1500*time.Millisecond))
	if !c.idle || !c.running {
		t.Fatalf("idle = %v running = %v, want warning only", c.idle, c.running)
	}

	c.processInput(input.Input{Pressed: []byte("a")}, start.Add(1600*time.Millisecond))
	if c.idle {
		t.Error("key press should clear the idle warning")
	}

	c.processInput(input.Input{}, start.Add(4*time.Second))
	if c.running {
		t.Error("client should stop after idle timeout")
	}
}

func TestMuteAndQuitKeys(t *testing.T) {
	var out bytes.Buffer
	player := &audio.Nop{}
	c := newTestClient(t, newTestSession(), &out, Options{Audio: player})

	c.processInput(input.Input{Mute: true, Pressed: []byte("m")}, time.Now())
	if !player.Muted() {
		t.Error("mute key did not reach the audio player")
	}
	c.processInput(input.Input{Quit: true, Pressed: []byte("q")}, time.Now())
	if c.running {
		t.Error("quit key did not stop the client")
	}
}

func TestTint(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	s := newStyles(r)

	if got := s.tint(1); got != "\x1b[38;5;232m" {
		t.Errorf("tint(1) = %q", got)
	}
	if got := s.tint(0); got != "" {
		t.Errorf("tint(0) = %q, want none", got)
	}
	if got := newStyles(plainRenderer()).tint(1); got != "" {
		t.Errorf("ascii tint = %q, want none", got)
	}
}

func TestLivesText(t *testing.T) {
	tests := []struct {
		lives int
		want  string
	}{
		{0, ""}, {1, "▲"}, {3, "▲ ▲ ▲"},
	}
	for _, tt := range tests {
		if got := livesText(tt.lives); got != tt.want {
			t.Errorf("livesText(%d) = %q, want %q", tt.lives, got, tt.want)
		}
	}
}
