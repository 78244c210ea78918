package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jabulani101/GHO57-RACING/internal/config"
	"github.com/Jabulani101/GHO57-RACING/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := newLogger("info", "console")
		log.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Int("width", cfg.WindowWidth).
		Int("height", cfg.WindowHeight).
		Str("player", cfg.PlayerID).
		Str("entitlements", cfg.EntitlementDB).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.RunDesktop(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}

func newLogger(level, format string) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToUpper(level) {
	case "TRACE":
		lvl = zerolog.TraceLevel
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if format == "json" {
		out = os.Stderr
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
