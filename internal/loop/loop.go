// Package loop runs one game session on an ANSI terminal: it reads keys,
// ticks the session at a fixed rate and draws the field with half-blocks.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

// Options configures a terminal client. Zero values select defaults.
type Options struct {
	FrameTime    time.Duration
	TermSizeFunc draw.TermSizeFunc
	Audio        audio.Player
	Renderer     *lipgloss.Renderer
	Logger       *log.Logger
	Username     string

	// IdleWarn shows a prompt after this long without input; IdleTimeout
	// ends the client. Zero disables either.
	IdleWarn    time.Duration
	IdleTimeout time.Duration
}

// Client handles rendering and input for a single terminal.
type Client struct {
	sess         *session.Session
	opts         Options
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	styles       styles
	termSizeFunc draw.TermSizeFunc

	lastInput     time.Time
	idle          bool
	wasIdle       bool
	prevState     session.State
	prevStateSeen bool
	running       bool
}

// Run plays sess on the terminal behind r and w until the player quits, the
// input ends or ctx is canceled.
func Run(ctx context.Context, sess *session.Session, r *bufio.Reader, w io.Writer, opts Options) error {
	c := NewClient(sess, input.StartStream(r), w, opts)
	return c.Run(ctx)
}

// NewClient creates a client reading keys from stream and drawing to w.
func NewClient(sess *session.Session, stream *input.Stream, w io.Writer, opts Options) *Client {
	if opts.FrameTime <= 0 {
		opts.FrameTime = targetFrameTime
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(w)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	snap := sess.Snapshot()
	termWidth, termHeight, _ := opts.TermSizeFunc()

	return &Client{
		sess:         sess,
		opts:         opts,
		canvas:       draw.NewScaledCanvas(termWidth, termHeight, snap.Field.Width, snap.Field.Height),
		chunkWriter:  draw.NewChunkWriter(w),
		writer:       w,
		inputStream:  stream,
		styles:       newStyles(opts.Renderer),
		termSizeFunc: opts.TermSizeFunc,
		lastInput:    time.Now(),
		running:      true,
	}
}

// Run starts the client loop. Blocks until the client stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	ticker := time.NewTicker(c.opts.FrameTime)
	defer ticker.Stop()

	for c.running {
		if err := c.frame(time.Now()); err != nil {
			return err
		}
		if !c.running {
			break
		}

		select {
		case <-ctx.Done():
			c.running = false
		case <-ticker.C:
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one Input → Update → Draw cycle at now.
func (c *Client) frame(now time.Time) error {
	in := input.ReadInputAt(c.inputStream, now)
	c.processInput(in, now)
	if !c.running {
		return nil
	}

	before := c.sess.State()
	events := c.sess.Tick(now, in.Intent())
	if after := c.sess.State(); after.Screen() != before.Screen() {
		// A key held through a screen change must not act on the new screen.
		c.inputStream.ResetKeyInput()
		c.opts.Logger.Debug("state changed", "user", c.opts.Username, "from", before, "to", after)
	}

	snap := c.sess.Snapshot()
	c.opts.Audio.Handle(events)
	c.opts.Audio.SetTempo(snap.Tempo)

	c.updateScreen()
	return c.drawFrame(snap, now)
}

// processInput handles client-level keys and inactivity.
func (c *Client) processInput(in input.Input, now time.Time) {
	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.idle = false
	} else if idle := now.Sub(c.lastInput); c.opts.IdleTimeout > 0 && idle > c.opts.IdleTimeout {
		c.opts.Logger.Info("disconnecting idle player", "user", c.opts.Username)
		c.running = false
	} else if c.opts.IdleWarn > 0 && idle > c.opts.IdleWarn {
		c.idle = true
	}

	if in.Mute {
		c.opts.Audio.ToggleMute()
	}
	if in.Quit {
		c.running = false
	}
}

// updateScreen handles terminal resize. On an actual size change the
// terminal is cleared to drop residual cells outside the new canvas.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	if c.canvas.Resize(termWidth, termHeight) {
		c.chunkWriter.ClearScreen()
	}
}
