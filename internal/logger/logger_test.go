package logger_test

import (
	"fmt"
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"

	"lexbrief/internal/logger"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(args ...any) { r.lines = append(r.lines, "DEBUG "+fmt.Sprint(args...)) }
func (r *recordingLogger) Info(args ...any)  { r.lines = append(r.lines, "INFO "+fmt.Sprint(args...)) }
func (r *recordingLogger) Warn(args ...any)  { r.lines = append(r.lines, "WARN "+fmt.Sprint(args...)) }
func (r *recordingLogger) Error(args ...any) { r.lines = append(r.lines, "ERROR "+fmt.Sprint(args...)) }
func (r *recordingLogger) Debugf(format string, args ...any) {
	r.Debug(fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Infof(format string, args ...any) { r.Info(fmt.Sprintf(format, args...)) }
func (r *recordingLogger) Warnf(format string, args ...any) { r.Warn(fmt.Sprintf(format, args...)) }
func (r *recordingLogger) Errorf(format string, args ...any) {
	r.Error(fmt.Sprintf(format, args...))
}

func TestNewLogger_ReturnsGookitLogger(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		lg := logger.NewLogger("debug", format)
		_, ok := lg.(*slog.Logger)
		assert.True(t, ok, format)
	}
}

func TestInit_UnknownLevelStillUsable(t *testing.T) {
	prev := logger.Log
	t.Cleanup(func() { logger.Log = prev })

	logger.Init("not-a-level", "json")
	assert.NotNil(t, logger.Log)
	assert.NotPanics(t, func() {
		logger.InfoWithFields("hello", logger.Fields{"k": "v"})
	})
}

func TestWithFields_FallsBackForCustomLogger(t *testing.T) {
	prev := logger.Log
	t.Cleanup(func() { logger.Log = prev })

	rec := &recordingLogger{}
	logger.Log = rec

	logger.InfoWithFields("info msg", logger.Fields{"a": 1})
	logger.WarnWithFields("warn msg", nil)
	logger.ErrorWithFields("error msg", logger.Fields{})
	logger.DebugWithFields("debug msg", nil)

	assert.Equal(t, []string{"INFO info msg", "WARN warn msg", "ERROR error msg", "DEBUG debug msg"}, rec.lines)
}
