package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		entries = append(entries, m)
	}
	return entries
}

func TestNew_JSONWithRunID(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer

	l := New(Config{Level: "info", Format: "json", RunID: "run-1", Output: &buf})
	l.Info().Str("image", "pan_001.jpg").Msg("saved")
	l.Debug().Msg("hidden")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0]["run_id"])
	assert.Equal(t, "pan_001.jpg", entries[0]["image"])
	assert.Equal(t, "info", entries[0]["level"])
}

func TestNew_DebugEnvForcesDebug(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer

	l := New(Config{Level: "warn", Format: "json", Output: &buf})
	l.Debug().Msg("visible")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0]["run_id"])
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer

	l := New(Config{Level: "chatty", Format: "json", Output: &buf})
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestContextRoundTrip(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	l := New(Config{Format: "json", RunID: "ctx-run", Output: &buf})

	ctx := WithContext(context.Background(), l)
	from := FromContext(ctx)
	from.Info().Msg("hello")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ctx-run", entries[0]["run_id"])
}

func TestDebugLogUsesDefault(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer
	prev := std
	defer SetDefault(prev)

	SetDefault(New(Config{Format: "json", Output: &buf}))
	DebugLog("[walkFiles]: sending file %s", "a.png")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "[walkFiles]: sending file a.png", entries[0]["message"])
}
