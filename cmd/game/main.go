package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

func main() {
	settings := config.Load()
	logger, closeLog, err := settings.NewLogger(io.Discard, "game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var player audio.Player = &audio.Nop{}
	if spk, err := audio.NewSpeaker(settings.Muted, logger); err != nil {
		logger.Warn("audio disabled", "err", err)
	} else {
		player = spk
	}
	defer player.Close()

	sess := session.New(session.Options{
		Field:  object.NewField(settings.FieldWidth, settings.FieldHeight),
		Store:  store.Open(settings.HighScorePath),
		Logger: logger,
	})
	defer sess.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, sess, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		FrameTime: settings.FrameTime,
		Audio:     player,
		Renderer:  lipgloss.NewRenderer(os.Stdout),
		Logger:    logger,
	})
	if err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
