package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ContextKey string

const LoggerKey ContextKey = "logger"

type Config struct {
	// Level is a zerolog level name; DEBUG=1 in the environment forces debug.
	Level string
	// Format is "console" or "json".
	Format string
	// RunID tags every entry; a new one is generated when empty.
	RunID  string
	Output io.Writer
}

var std = New(Config{})

func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if os.Getenv("DEBUG") == "1" {
		level = zerolog.DebugLevel
	}

	runID := cfg.RunID
	if runID == "" {
		runID = NewRunID()
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
}

func NewRunID() string {
	return uuid.NewString()
}

// SetDefault replaces the logger used by DebugLog and the FromContext fallback.
func SetDefault(l zerolog.Logger) {
	std = l
}

func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return l
	}
	return std
}

func DebugLog(format string, args ...any) {
	std.Debug().Msg(fmt.Sprintf(format, args...))
}
