package logger

import (
	"os"
	"testing"

	"github.com/senyabanana/freight-service/internal/router/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		l, err := New(config.Config{LogLevel: "debug", AppEnv: "local"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("with rotating file", func(t *testing.T) {
		dir := t.TempDir()
		l, err := New(config.Config{LogLevel: "info", LogDirectory: dir})
		require.NoError(t, err)
		l.Info("hello")
		_ = l.Sync()

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(config.Config{LogLevel: "loud"})
		assert.Error(t, err)
	})
}
