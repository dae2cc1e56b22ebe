package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	grpclogging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokechain-api/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, logging.ParseLevel(in))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("egg hatched", "egg_id", "egg-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "egg hatched", record["msg"])
	assert.Equal(t, "egg-1", record["egg_id"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "debug", "text")

	logger.Debug("turn resolved", "turn", 2)

	assert.Contains(t, buf.String(), "msg=\"turn resolved\"")
	assert.Contains(t, buf.String(), "turn=2")
}

func TestInterceptorLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.InterceptorLogger(logging.New(&buf, "info", "json"))

	logger.Log(context.Background(), grpclogging.LevelDebug, "dropped")
	logger.Log(context.Background(), grpclogging.LevelWarn, "finished call", "grpc.code", "NotFound")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "NotFound", record["grpc.code"])
}
