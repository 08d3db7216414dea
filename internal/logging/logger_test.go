package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := config.AppConfig{Name: "fitness-bot", Environment: "test", Version: "0.1.0"}

	cases := []struct {
		name       string
		cfg        config.LoggingConfig
		wantCloser bool
	}{
		{"stdout json", config.LoggingConfig{Level: "info", Output: "stdout"}, false},
		{"stderr", config.LoggingConfig{Level: "debug", Output: "stderr"}, false},
		{"console format", config.LoggingConfig{Level: "warn", Output: "stdout", Format: "console"}, false},
		{"empty config falls back", config.LoggingConfig{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, closer, err := New(tc.cfg, app)
			require.NoError(t, err)
			assert.NotNil(t, logger)
			if tc.wantCloser {
				assert.NotNil(t, closer)
			} else {
				assert.Nil(t, closer)
			}
		})
	}

	t.Run("file output creates the file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "bot.log")
		cfg := config.LoggingConfig{Level: "error", Output: "file", FilePath: logPath}

		logger, closer, err := New(cfg, app)
		require.NoError(t, err)
		require.NotNil(t, closer)
		logger.Error().Msg("probe")
		closer.Close()

		info, err := os.Stat(logPath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("file output without a path is rejected", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "file"}, app)
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("Debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}
