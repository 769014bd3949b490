package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		l, err := New(&Config{Format: "console", Output: path, TimeFormat: "15:04"})
		require.NoError(t, err)
		l.Warn("item reorder skipped")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "item reorder skipped")
		assert.False(t, json.Valid(data))
	})

	t.Run("unwritable file output fails", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
		assert.Error(t, err)
	})

	t.Run("writes json lines to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		l.Info("complement edited", zap.String("complement_id", "c-1"))
		require.NoError(t, l.Sync())

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		scanner := bufio.NewScanner(f)
		require.True(t, scanner.Scan())
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, "complement edited", entry["msg"])
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "c-1", entry["complement_id"])
	})

	t.Run("tees extra cores", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		l, err := New(&Config{Output: "stderr"}, core)
		require.NoError(t, err)

		l.Info("skipped by observer")
		l.Warn("seen by observer")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "seen by observer", logs[0].Message)
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		" Error ": zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
