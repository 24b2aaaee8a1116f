// Package logger builds the service's zerolog logger and the child loggers
// handed to sessions, listings and HTTP requests.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by every component, so one visitor's activity can be
// followed across the HTTP layer, the session manager and its listing.
const (
	FieldComponent = "component"
	FieldSession   = "session_id"
	FieldRequestID = "request_id"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName is the name of the service for log context
	ServiceName string `env:"SERVICE_NAME" envDefault:"room-filter"`

	// Environment is added to every entry when set
	Environment string `env:"APP_ENV"`
}

// New creates the service logger. A nil output writes to stdout.
// An unknown level falls back to info.
func New(cfg Config, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		ctx = ctx.Str("env", cfg.Environment)
	}
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

// SetGlobal makes l the logger behind the zerolog/log package and the
// fallback for zerolog.Ctx.
func SetGlobal(l zerolog.Logger) {
	log.Logger = l
	zerolog.DefaultContextLogger = &l
}

// WithComponent tags l with the component that owns it.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str(FieldComponent, component).Logger()
}

// WithSession tags l with a listing session ID.
func WithSession(l zerolog.Logger, sessionID string) zerolog.Logger {
	return l.With().Str(FieldSession, sessionID).Logger()
}

// WithRequestID tags l with an HTTP request ID.
func WithRequestID(l zerolog.Logger, requestID string) zerolog.Logger {
	return l.With().Str(FieldRequestID, requestID).Logger()
}
