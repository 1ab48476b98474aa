package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden message")
	logger.Warn("shown message", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "shown message")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "mdrich")
}

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "")
	require.NoError(t, err)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.NotContains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "info message")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	assert.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mdrich.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	logger, err := New(f, "info")
	require.NoError(t, err)
	logger.Info("written to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
