// Package logger is a thin package-level wrapper around log/slog. Until
// Initialize is called every helper is a no-op, so generators can log freely
// from tests without configuration.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelAlways is above Error so it passes every level filter. Used for
// lines an operator must always see, such as export summaries.
const LevelAlways = slog.Level(12)

var (
	logger *slog.Logger
)

var levelNames = map[string]slog.Level{
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARNING": slog.LevelWarn,
	"WARN":    slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

// Initialize sets up the package logger from config.
func Initialize(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	level := parseLogLevel(config.Level)

	var handlers []slog.Handler
	if config.ConsoleEnabled {
		handlers = append(handlers, newHandler(os.Stdout, config.ConsoleFormat, level))
	}
	if config.FileEnabled {
		rotating := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
		}
		handlers = append(handlers, newHandler(rotating, config.FileFormat, level))
	}

	switch len(handlers) {
	case 0:
		logger = slog.New(newHandler(os.Stdout, "text", level))
	case 1:
		logger = slog.New(handlers[0])
	default:
		logger = slog.New(newMultiHandler(handlers...))
	}
	return nil
}

// SetOutput replaces the package logger with a single handler writing to w.
func SetOutput(w io.Writer, format, level string) {
	logger = slog.New(newHandler(w, format, parseLogLevel(level)))
}

// Disable turns every helper back into a no-op.
func Disable() {
	logger = nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameAlways,
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func renameAlways(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == LevelAlways {
			a.Value = slog.StringValue("ALWAYS")
		}
	}
	return a
}

// parseLogLevel converts a level name to slog.Level, defaulting to INFO.
func parseLogLevel(level string) slog.Level {
	if l, ok := levelNames[strings.ToUpper(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warning logs a warning message
func Warning(msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Always logs a message that bypasses level filtering.
func Always(msg string, args ...any) {
	if logger != nil {
		logger.Log(context.Background(), LevelAlways, msg, args...)
	}
}

// multiHandler fans records out to several handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(handlers...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return newMultiHandler(handlers...)
}
