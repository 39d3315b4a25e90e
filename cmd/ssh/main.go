package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownGrace      = 15 * time.Second
)

// arcade runs one game session per SSH connection. All sessions share the
// high score store.
type arcade struct {
	settings config.Settings
	store    store.Store
	logger   *log.Logger

	ctx     context.Context // Canceled on shutdown to end every game
	players sync.WaitGroup
}

func main() {
	settings := config.Load()
	logger, closeLog, err := settings.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	idleWarn := config.GetEnvDuration("SSH_IDLE_WARN", loop.DefaultIdleWarn)
	idleTimeout := config.GetEnvDuration("SSH_IDLE_TIMEOUT", loop.DefaultIdleTimeout)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "highScore", settings.HighScorePath)

	gamesCtx, endGames := context.WithCancel(context.Background())
	a := &arcade{
		settings: settings,
		store:    store.Open(settings.HighScorePath),
		logger:   logger,
		ctx:      gamesCtx,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.middleware(idleWarn, idleTimeout),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// End every running game, then wait for the players to be dropped.
	endGames()
	a.wait(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// wait blocks until every game has ended or timeout passes.
func (a *arcade) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		a.players.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		a.logger.Warn("players still connected after grace period")
	}
}

// middleware runs a game for each SSH session.
func (a *arcade) middleware(idleWarn, idleTimeout time.Duration) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			a.play(sess, idleWarn, idleTimeout)
			next(sess)
		}
	}
}

func (a *arcade) play(sess ssh.Session, idleWarn, idleTimeout time.Duration) {
	pty, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
		return
	}

	a.players.Add(1)
	defer a.players.Done()

	logger := a.logger.With("user", sess.User())
	logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

	sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			sizeTracker.update(win.Width, win.Height)
		}
	}()

	game := session.New(session.Options{
		Field:  object.NewField(a.settings.FieldWidth, a.settings.FieldHeight),
		Store:  a.store,
		Logger: logger,
	})
	defer game.Close()

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	go func() {
		select {
		case <-sess.Context().Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	renderer := lipgloss.NewRenderer(sess, termenv.WithEnvironment(newSSHEnviron(sess, pty.Term)), termenv.WithUnsafe())
	err := loop.Run(ctx, game, bufio.NewReader(sess), sess, loop.Options{
		FrameTime:    a.settings.FrameTime,
		TermSizeFunc: sizeTracker.getSize,
		Renderer:     renderer,
		Logger:       logger,
		Username:     sess.User(),
		IdleWarn:     idleWarn,
		IdleTimeout:  idleTimeout,
	})
	if err != nil {
		logger.Error("game error", "err", err)
	}

	snap := game.Snapshot()
	logger.Info("session ended", "score", snap.Score, "level", snap.Level)
}

// sshEnviron exposes the client's environment to termenv so color support
// is detected from the remote TERM rather than the server's.
type sshEnviron struct {
	environ []string
}

func newSSHEnviron(sess ssh.Session, term string) sshEnviron {
	return sshEnviron{environ: append(sess.Environ(), "TERM="+term)}
}

func (e sshEnviron) Environ() []string {
	return e.environ
}

func (e sshEnviron) Getenv(key string) string {
	// Later entries win, like os.Getenv after a re-export.
	for i := len(e.environ) - 1; i >= 0; i-- {
		if k, v, ok := strings.Cut(e.environ[i], "="); ok && k == key {
			return v
		}
	}
	return ""
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
