package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn, FormatText)
	l.Info("hidden")
	l.Warn("shown", slog.Int("dropped", 3))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "dropped=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelDebug, FormatJSON).Debug("loaded", slog.String("dataset", "players"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "loaded", m["msg"])
	assert.Equal(t, "players", m["dataset"])
}

func TestInitDebugOverrides(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, "error", true)
	slog.Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}
