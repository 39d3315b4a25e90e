package main

import (
	"os"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/desktop"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

func main() {
	settings := config.Load()
	logger, closeLog, err := settings.NewLogger(os.Stderr, "desktop")
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
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

	if err := desktop.Run(sess, desktop.Options{Audio: player, Logger: logger}); err != nil {
		logger.Error("window closed with error", "err", err)
	}
}
