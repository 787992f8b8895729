package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":     FormatAuto,
		"auto": FormatAuto,
		"TEXT": FormatText,
		"tint": FormatText,
		"json": FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("", slog.LevelWarn)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	l, err = ParseLevel("debug", slog.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud", slog.LevelInfo)
	assert.Error(t, err)
}

func TestNewAutoIsJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTTY(&buf))

	New(&buf, FormatAuto, slog.LevelInfo).Info("clipboard set", "store", "memory")
	New(&buf, FormatAuto, slog.LevelInfo).Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "clipboard set", rec["msg"])
	assert.Equal(t, "memory", rec["store"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, FormatText, slog.LevelDebug).Debug("clipboard item", "size_bytes", 3)
	assert.Contains(t, buf.String(), "clipboard item")
	assert.Contains(t, buf.String(), "size_bytes")
}
