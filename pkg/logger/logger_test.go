package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestInitHonorsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Init()
	assert.False(t, Log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Log.Enabled(context.Background(), slog.LevelError))
}
