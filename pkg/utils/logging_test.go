package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		l := NewLogger("nope", "")

		require.NotNil(t, l)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("honours debug level", func(t *testing.T) {
		l := NewLogger("debug", "")

		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("writes to log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "api.log")
		l := NewLogger("info", path)

		l.Info("hello")
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})
}

func TestLogger_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, Logger(), Logger())
}
