// Package logger defines the logging surface used across sitescribe and
// a few ready-made backends. The library defaults to Nop so diagnostic
// output never mixes into a consumer's stdout protocol.
package logger

import "log"

// Logger is a minimal leveled, printf-style logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

type stdLogger struct{}

// NewStdLogger returns a Logger backed by the standard library log package.
func NewStdLogger() Logger { return stdLogger{} }

func (stdLogger) Debug(msg string, args ...any) { log.Printf("[DEBUG] "+msg, args...) }
func (stdLogger) Info(msg string, args ...any)  { log.Printf("[INFO] "+msg, args...) }
func (stdLogger) Warn(msg string, args ...any)  { log.Printf("[WARN] "+msg, args...) }
func (stdLogger) Error(msg string, args ...any) { log.Printf("[ERROR] "+msg, args...) }
