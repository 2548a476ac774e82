package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologOptions configures the zerolog backend.
type ZerologOptions struct {
	// Writer receives log output. Defaults to stderr, keeping stdout free
	// for the caller's own output.
	Writer io.Writer
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Console enables human-readable console formatting.
	Console bool
	// TimeFormat overrides the console timestamp format.
	TimeFormat string
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a Logger backed by rs/zerolog.
func NewZerologLogger(opts ZerologOptions) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Console {
		cw := zerolog.ConsoleWriter{Out: w}
		if opts.TimeFormat != "" {
			cw.TimeFormat = opts.TimeFormat
		}
		w = cw
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	return &zerologLogger{
		logger: zerolog.New(w).With().Timestamp().Logger().Level(level),
	}
}

func (l *zerologLogger) Debug(msg string, args ...any) {
	l.logger.Debug().Msg(fmt.Sprintf(msg, args...))
}

func (l *zerologLogger) Info(msg string, args ...any) {
	l.logger.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *zerologLogger) Warn(msg string, args ...any) {
	l.logger.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *zerologLogger) Error(msg string, args ...any) {
	l.logger.Error().Msg(fmt.Sprintf(msg, args...))
}
