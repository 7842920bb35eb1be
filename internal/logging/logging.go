// Package logging configures zerolog output for the strata host and its
// subsystems.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a configured logger. When human is set the output is the
// console writer, otherwise JSON lines. Debug widens the level to debug.
func New(debug, human bool) zerolog.Logger {
	return NewWithOutput(os.Stderr, debug, human)
}

// NewWithOutput is New writing to the given sink. Used by tests and by the
// shell, which must keep the terminal free for the TUI.
func NewWithOutput(out io.Writer, debug, human bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if human {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config level name onto a zerolog level, defaulting to
// info for unknown names.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// PluginEvent logs a plugin lifecycle transition with structured fields.
func PluginEvent(log zerolog.Logger, event, plugin, path string) {
	log.Info().
		Str("event", event).
		Str("plugin", plugin).
		Str("path", path).
		Msg("plugin lifecycle")
}

// PluginFailure logs a failed plugin load with the captured loader message.
func PluginFailure(log zerolog.Logger, path, message string) {
	log.Warn().
		Str("event", "plugin_load_failed").
		Str("path", path).
		Str("reason", message).
		Msg("plugin load failed")
}
