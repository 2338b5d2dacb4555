package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestComponent(t *testing.T) {
	buf := captureGlobal(t)

	logger := Component("test-component")
	logger.Info().Msg("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-component", entry["cmp"])
	assert.Equal(t, "test message", entry["message"])
	assert.NotContains(t, entry, "cycle")
}

func TestComponent_AddsCycleFromContext(t *testing.T) {
	buf := captureGlobal(t)

	ctx := WithCycle(context.Background(), 7)
	logger := Component("review")
	logger.Warn().Ctx(ctx).Msg("request failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(7), entry["cycle"])
}

func TestGetCycle(t *testing.T) {
	assert.Equal(t, 0, GetCycle(context.Background()))
	assert.Equal(t, 3, GetCycle(WithCycle(context.Background(), 3)))
}
