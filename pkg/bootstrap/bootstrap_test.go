package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, ToLevel(tc.in))
		})
	}
}

func TestNewLogger_EnrichesFromContext(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newLogger(&buf, config.LogConfig{Level: "info"})
	ctx := logger.WithSessionID(context.Background(), "sess-1")

	// when
	log.DebugContext(ctx, "dropped")
	log.InfoContext(ctx, "kept")

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "sess-1", record["session_id"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newLogger(&buf, config.LogConfig{Level: "debug", Format: "text"})

	// when
	log.Debug("cart updated", "items", 3)

	// then
	assert.Contains(t, buf.String(), "msg=\"cart updated\"")
	assert.Contains(t, buf.String(), "items=3")
	assert.Contains(t, buf.String(), "source=")
}
