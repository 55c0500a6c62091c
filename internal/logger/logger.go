// Package logger is the process-wide structured logger, backed by gookit/slog.
package logger

import (
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logging surface used across the application.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields carries structured log fields.
type Fields map[string]any

// Log is the global logger. It works at info level until Init is called.
var Log Logger = NewLogger("info", "json")

// Init replaces the global logger. Unknown levels fall back to info.
func Init(level, format string) {
	Log = NewLogger(level, format)
}

// NewLogger builds a console logger at the given level. format is "json" or
// "console" (plain text).
func NewLogger(level, format string) Logger {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	if strings.EqualFold(format, "console") {
		h.SetFormatter(slog.NewTextFormatter())
	} else {
		h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
			f.Fields = []string{
				slog.FieldKeyDatetime,
				slog.FieldKeyLevel,
				slog.FieldKeyMessage,
			}
			f.Aliases = slog.StringMap{
				slog.FieldKeyDatetime: "time",
				slog.FieldKeyLevel:    "level",
				slog.FieldKeyMessage:  "message",
			}
			f.TimeFormat = "2006-01-02T15:04:05.000Z07:00"
		}))
	}

	return slog.NewWithHandlers(h)
}

func withFields(fields Fields) (*slog.Record, bool) {
	lg, ok := Log.(*slog.Logger)
	if !ok {
		return nil, false
	}
	return lg.WithFields(slog.M(fields)), true
}

// InfoWithFields logs msg at info level with structured fields.
func InfoWithFields(msg string, fields Fields) {
	if r, ok := withFields(fields); ok {
		r.Info(msg)
		return
	}
	Log.Info(msg)
}

func DebugWithFields(msg string, fields Fields) {
	if r, ok := withFields(fields); ok {
		r.Debug(msg)
		return
	}
	Log.Debug(msg)
}

func WarnWithFields(msg string, fields Fields) {
	if r, ok := withFields(fields); ok {
		r.Warn(msg)
		return
	}
	Log.Warn(msg)
}

func ErrorWithFields(msg string, fields Fields) {
	if r, ok := withFields(fields); ok {
		r.Error(msg)
		return
	}
	Log.Error(msg)
}
