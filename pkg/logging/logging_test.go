package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelParsing(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{name: "uppercase info", opts: Options{Level: "INFO"}, want: zerolog.InfoLevel},
		{name: "lowercase warn", opts: Options{Level: "warn"}, want: zerolog.WarnLevel},
		{name: "unknown falls back to info", opts: Options{Level: "verbose"}, want: zerolog.InfoLevel},
		{name: "empty falls back to info", opts: Options{}, want: zerolog.InfoLevel},
		{name: "debug flag lowers level", opts: Options{Level: "INFO", Debug: true}, want: zerolog.DebugLevel},
		{name: "debug flag keeps trace", opts: Options{Level: "trace", Debug: true}, want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.opts)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Format: "json", Out: &buf})

	logger.Info().Str("component", "config").Msg("loaded")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"component":"config"`)
	assert.Contains(t, out, `"message":"loaded"`)
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Format: "text", Out: &buf})

	logger.Info().Msg("loaded")

	out := buf.String()
	require.NotEmpty(t, out)
	// Console output is human-readable, not JSON
	assert.NotContains(t, out, `"message"`)
	assert.Contains(t, out, "loaded")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "error", Format: "json", Out: &buf})

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
