// Package logging provides a thin, component-scoped wrapper around zerolog
// so the rest of the engine never imports zerolog directly.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logging surface every engine package depends on.
// Fields are passed as alternating key/value pairs, matching the teacher's
// variadic logging convention.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	With(component string) Logger
}

// zerologLogger implements Logger on top of a configured zerolog.Logger.
type zerologLogger struct {
	z zerolog.Logger
}

// New builds the root logger for the given level string ("debug", "info",
// "warn", "error"; anything else falls back to "info"). Output goes to w
// (stderr for the CLI, matching §6's "diagnostic output on standard error").
func New(w io.Writer, levelStr string) Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := parseLevel(levelStr)
	z := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &zerologLogger{z: z}
}

// Discard returns a logger that drops everything, for tests.
func Discard() Logger {
	return &zerologLogger{z: zerolog.New(io.Discard)}
}

func parseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) With(component string) Logger {
	return &zerologLogger{z: l.z.With().Str("component", component).Logger()}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.event(l.z.Debug(), fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.event(l.z.Info(), fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.event(l.z.Warn(), fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	l.event(l.z.Error(), fields).Msg(msg)
}

// event attaches key/value pairs to a zerolog event, skipping a trailing
// unpaired key rather than panicking.
func (l *zerologLogger) event(ev *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	return ev
}

// StderrLogger is a convenience constructor used by the CLI entrypoint.
func StderrLogger(levelStr string) Logger {
	return New(os.Stderr, levelStr)
}
