package kala

import (
	"io"
	"log/slog"
	"os"

	"github.com/phanxgames/kala/kfont"
)

// logLevel is the minimum level of the default handler. Engine.SetDebugMode
// lowers it to debug.
var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).
	With("lib", "kala")

func init() {
	kfont.SetLogger(logger)
}

// SetLogger replaces the package logger and the kfont logger. Passing nil
// discards all output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
	kfont.SetLogger(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger { return logger }

// LogLevel returns the level variable the default handler filters on. Pass it
// as HandlerOptions.Level to a custom handler so debug mode still applies.
func LogLevel() *slog.LevelVar { return logLevel }
