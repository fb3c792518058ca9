package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Level: "WARN", Out: &buf})
	require.NoError(t, err)
	defer closeFn()

	log.Info().Msg("hidden")
	log.Warn().Str("feature", "tags").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "tags", entry["feature"])
	assert.Equal(t, "shown", entry["message"])
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_ConsoleWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log, _, err := New(Options{Out: &buf, Console: true})
	require.NoError(t, err)

	log.Info().Msg("carregado")

	assert.Contains(t, buf.String(), "carregado")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_FileReceivesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestao.log")
	var buf bytes.Buffer
	log, closeFn, err := New(Options{File: path, Out: &buf, Console: true})
	require.NoError(t, err)

	log.Error().Msg("falhou")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"falhou"`)
	assert.Empty(t, buf.String())
}
