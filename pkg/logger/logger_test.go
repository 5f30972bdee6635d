package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("booking %s created", "b-1")
	log.Warn("slot %s taken", "10:00")

	out := buf.String()
	assert.NotContains(t, out, "booking b-1 created")
	assert.Contains(t, out, "slot 10:00 taken")
	assert.Contains(t, out, "level=WARN")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Debug("settlement amount=%d", 5000)
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "settlement amount=5000")
}
