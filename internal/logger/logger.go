// Package logger configures the application's structured logging.
//
// It builds the root zerolog logger (console output locally, JSON elsewhere)
// and the adapters that feed pgx query tracing into zerolog.
package logger

import (
	"os"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New constructs the root application logger.
//
// In the "local" environment output is a human-friendly console writer;
// otherwise structured JSON goes to stderr. level accepts the usual zerolog
// names (trace, debug, info, warn, error); unknown values fall back to info.
func New(env, level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(logLevel).With().Timestamp().Logger()
}

// NewPgxLogger creates the logger used for SQL query tracing. It shares the
// console format so query logs interleave readably with request logs.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel converts a zerolog level to the pgx tracelog level so
// query tracing verbosity follows the application log level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
