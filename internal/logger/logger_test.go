package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown", "path", "/x")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "/x", rec["path"])
}

func TestNew_FileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(dir, slog.LevelInfo)
	require.NoError(t, err)

	log.Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNew_StderrWhenNoDir(t *testing.T) {
	log, err := New("", slog.LevelInfo)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
