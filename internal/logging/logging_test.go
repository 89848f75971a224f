package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug,
		"":      LevelInfo,
		"INFO":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewJSONLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn, FormatJSON)
	l.Info("hidden")
	l.Warn("chapter load failed", "book", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "chapter load failed", entry["msg"])
	require.Equal(t, "WARN", entry["level"])
	require.EqualValues(t, 3, entry["book"])
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reader.log")
	c, err := InitFile(path, LevelDebug)
	require.NoError(t, err)
	Logger().Debug("index loaded", "verses", 31102)
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"index loaded"`)

	c, err = InitFile("", LevelInfo)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = InitFile(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo)
	require.Error(t, err)
}
