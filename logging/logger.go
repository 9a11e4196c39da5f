// Package logging provides the one-method logging seam used across the
// server and client: runtime warnings, session teardown reasons, and
// handshake failures all go through a Logger rather than direct calls to
// the standard log package.
package logging

import "log"

// Logger is implemented by anything that can format and emit a line.
// Package telekey depends on this interface, not on package log directly,
// so tests can substitute a buffer-backed fake.
type Logger interface {
	Printf(format string, v ...any)
}

// LogLogger is the production Logger, a thin wrapper over the standard
// library's log package.
type LogLogger struct{}

// NewLogLogger returns the standard-log-backed Logger.
func NewLogLogger() Logger {
	return LogLogger{}
}

func (l LogLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
