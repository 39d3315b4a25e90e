package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
	"github.com/tomz197/asteroids-arcade/internal/store"
	"github.com/tomz197/asteroids-arcade/internal/tui"
)

func main() {
	settings := config.Load()
	logger, closeLog, err := settings.NewLogger(io.Discard, "tui")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, sess, tui.Options{
		FrameTime: settings.FrameTime,
		Audio:     player,
		Logger:    logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
