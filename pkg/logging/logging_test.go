package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetsync/pkg/logging"
)

func TestNewJSONWritesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf)

	logger.Info().Str("spreadsheet_id", "1abc").Msg("fetched values")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetched values", entry["message"])
	assert.Equal(t, "1abc", entry["spreadsheet_id"])
	assert.NotEmpty(t, entry["time"])
}

func TestContextLogger(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewJSON(&buf)

		ctx := logging.WithLogger(context.Background(), &logger)
		got := logging.FromContext(ctx)
		require.NotNil(t, got)

		got.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("missing logger falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("with source", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewJSON(&buf)
		ctx := logging.WithLogger(context.Background(), &logger)

		ctx = logging.WithSource(ctx, "1abc_Requests")
		logging.FromContext(ctx).Info().Msg("deciding")

		assert.Contains(t, buf.String(), `"source":"1abc_Requests"`)
	})

	t.Run("with spreadsheet", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewJSON(&buf)
		ctx := logging.WithLogger(context.Background(), &logger)

		ctx = logging.WithSpreadsheet(ctx, "1abc", "Requests")
		logging.FromContext(ctx).Info().Msg("fetching")

		out := buf.String()
		assert.Contains(t, out, `"spreadsheet_id":"1abc"`)
		assert.Contains(t, out, `"sheet_name":"Requests"`)
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}

func TestNewLoggerFromConfigNilUsesDefaults(t *testing.T) {
	logger := logging.NewLoggerFromConfig(nil)
	// A nil config must still produce a usable logger.
	logger.Debug().Msg("no panic")
}
