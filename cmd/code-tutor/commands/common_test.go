package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinford/code-tutor/internal/platform/config"
	"github.com/jinford/code-tutor/internal/platform/logger"
)

func TestNewLoggerConfig(t *testing.T) {
	tests := []struct {
		name  string
		input config.LogConfig
		want  logger.Config
	}{
		{
			name:  "未指定はデフォルト",
			input: config.LogConfig{},
			want:  logger.DefaultConfig(),
		},
		{
			name:  "レベルとフォーマットを上書き",
			input: config.LogConfig{Level: "debug", Format: "text"},
			want:  logger.Config{Level: slog.LevelDebug, Format: "text"},
		},
		{
			name:  "フォーマットのみ指定",
			input: config.LogConfig{Format: "text"},
			want:  logger.Config{Level: slog.LevelInfo, Format: "text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newLoggerConfig(tt.input))
		})
	}
}
