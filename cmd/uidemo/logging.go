package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// setupLogging installs a tint-backed slog handler as the default
// logger, matching the level to the --debug flag.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})
	slog.SetDefault(slog.New(h))
}
