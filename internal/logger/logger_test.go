package logger

import (
	"path/filepath"
	"testing"

	"fwwatch/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.NewDefaultLogConfig()

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "verbose"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_WithFileOutput(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "fwwatch.log")

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info().Msg("file writer smoke test")
	assert.FileExists(t, cfg.LogFile)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, parseFormat("json"))
	assert.Equal(t, FormatText, parseFormat("text"))
	assert.Equal(t, FormatConsole, parseFormat("console"))
	assert.Equal(t, FormatConsole, parseFormat(""))
}
