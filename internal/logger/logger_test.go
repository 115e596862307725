// ABOUTME: Tests for the process-wide logger.
// ABOUTME: Covers level parsing, single initialisation, and the disabled default.
package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"loud", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestGetBeforeInitIsDisabled(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Equal(t, zerolog.Disabled, Get().GetLevel())
}

func TestInitOnce(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	Init(Options{Level: "debug", Output: &second})

	log := Get()
	log.Info().Msg("hello")
	log.Debug().Msg("hidden")

	require.Contains(t, first.String(), `"message":"hello"`)
	assert.NotContains(t, first.String(), "hidden")
	assert.Empty(t, second.String())
}
