// SPDX-License-Identifier: MIT

// Package logging provides the leveled stderr logger of the diim command.
// Every logger carries a run_id so that lines from one invocation (or one
// sweep) can be told apart when several runs share a log file.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// LevelTrace is a custom slog level below Debug. Per-case sweep progress and
// per-step simulation detail are logged at this level.
const LevelTrace = slog.LevelDebug - 4

// RunIDKey is the attribute key of the run identifier.
const RunIDKey = "run_id"

// ParseLevel maps a level name to a slog.Level.
// Supported values: "info", "debug", "trace", "warn", "error" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w, tagged with a fresh run id.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return NewLoggerWithRunID(level, w, uuid.NewString())
}

// NewLoggerWithRunID is NewLogger with a caller-chosen run id.
func NewLoggerWithRunID(level string, w io.Writer, runID string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts)).With(RunIDKey, runID)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
