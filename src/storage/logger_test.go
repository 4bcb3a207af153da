package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLeveledEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("service started")
	logger.Warning("disk almost full")
	logger.Error("load failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "INFO: service started")
	assert.Contains(t, text, "WARNING: disk almost full")
	assert.Contains(t, text, "ERROR: load failed")
}

func TestLoggerSubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	ch := logger.Subscribe()
	logger.Debug("cache invalidated")

	select {
	case entry := <-ch:
		assert.Contains(t, entry, "DEBUG: cache invalidated")
	case <-time.After(time.Second):
		t.Fatal("no entry delivered to subscriber")
	}
}

func TestLoggerRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	logger, err := NewLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info(strings.Repeat("x", 512))
	require.NoError(t, logger.CheckRotate("1 * 256"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The active file starts over empty.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestLoggerRotationBelowThreshold(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("small entry")
	require.NoError(t, logger.CheckRotate("10 * 1024 * 1024"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEvalSizeExpression(t *testing.T) {
	assert.Equal(t, int64(10*1024*1024), eval("10 * 1024 * 1024"))
	assert.Equal(t, int64(256), eval("256"))
}
