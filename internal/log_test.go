package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"warn", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{" debug ", LogLevelDebug},
		{"TRACE", LogLevelTrace},
		{"", LogLevelInfo},
		{"loud", LogLevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestLogger_LevelGating(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := newLoggerWithCore(LogLevelWarn, core)

	logger.Error("broken %d", 1)
	logger.Warn("careful %s", "now")
	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Trace("hidden")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "broken 1", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "careful now", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLogger_TraceAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := newLoggerWithCore(LogLevelTrace, core).With("prediction_id", "abc")

	logger.Trace("step %s", "transform")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["prediction_id"])
	assert.Equal(t, true, fields["trace"])
}

func TestNewLoggerWithOptions(t *testing.T) {
	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := NewLoggerWithOptions(LogOptions{Format: "xml"})
		assert.Error(t, err)
	})

	t.Run("writes json to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, err := NewLoggerWithOptions(LogOptions{Level: "DEBUG", Format: "json", File: path})
		require.NoError(t, err)
		assert.Equal(t, LogLevelDebug, logger.GetLevel())

		logger.Info("server listening on %s", ":8080")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"server listening on :8080"`)
	})
}
