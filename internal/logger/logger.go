package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type implLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// Options controls where log lines go.
type Options struct {
	Level  string
	Format string // "text" or "json" for the console handler
	File   string // optional JSON log file, fanned out next to the console
}

// New creates a console Logger at the given level.
func New(level string) Logger {
	return NewWithWriters(os.Stdout, nil, level, "text")
}

// NewWithOptions creates a Logger and returns a cleanup func that closes the
// log file, if one was opened.
func NewWithOptions(opts Options) (Logger, func() error) {
	if opts.File == "" {
		return NewWithWriters(os.Stdout, nil, opts.Level, opts.Format), func() error { return nil }
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l := NewWithWriters(os.Stdout, nil, opts.Level, opts.Format)
		l.Warn(context.Background(), "Failed to open log file %s, using stdout only: %v", opts.File, err)
		return l, func() error { return nil }
	}

	return NewWithWriters(os.Stdout, file, opts.Level, opts.Format), file.Close
}

// NewWithWriters builds a Logger writing to console and, when file is non-nil,
// JSON lines to file as well.
func NewWithWriters(console, file io.Writer, level, format string) Logger {
	lvl := parseLevel(level)
	hopts := &slog.HandlerOptions{Level: lvl}

	var consoleHandler slog.Handler
	if strings.ToLower(format) == "json" {
		consoleHandler = slog.NewJSONHandler(console, hopts)
	} else {
		consoleHandler = slog.NewTextHandler(console, hopts)
	}

	handler := consoleHandler
	if file != nil {
		handler = slogmulti.Fanout(consoleHandler, slog.NewJSONHandler(file, hopts))
	}

	return &implLogger{
		logger: slog.New(handler),
		level:  lvl,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo // default to info
	}
}

func (l *implLogger) shouldLog(level slog.Level) bool {
	return level >= l.level
}

func (l *implLogger) log(ctx context.Context, level slog.Level, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level, msg)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelError, msg, args...)
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() Logger {
	return NewWithWriters(io.Discard, nil, "error", "text")
}
