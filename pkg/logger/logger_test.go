package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_Handle(t *testing.T) {
	testCases := []struct {
		name          string
		ctx           func() context.Context
		expectedAttrs map[string]string
		absentAttrs   []string
	}{
		{
			name: "request and session ids are attached",
			ctx: func() context.Context {
				ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
				return WithSessionID(ctx, "sess-1")
			},
			expectedAttrs: map[string]string{"request_id": "req-1", "session_id": "sess-1"},
			absentAttrs:   []string{"trace_id"},
		},
		{
			name:        "plain context adds nothing",
			ctx:         context.Background,
			absentAttrs: []string{"trace_id", "request_id", "session_id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			log := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))
			// when
			log.InfoContext(tc.ctx(), "hello")
			// then
			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			for key, value := range tc.expectedAttrs {
				assert.Equal(t, value, record[key])
			}
			for _, key := range tc.absentAttrs {
				assert.NotContains(t, record, key)
			}
		})
	}
}
