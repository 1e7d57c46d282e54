package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fwwatch/internal/watcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotWriter_Save(t *testing.T) {
	dir := t.TempDir()
	sw := NewSnapshotWriter(dir, zerolog.Nop())

	path, err := sw.Save("<html>firmware page</html>", 1756000000)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "page_1756000000.html"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>firmware page</html>", string(content))
}

func TestSnapshotWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	sw := NewSnapshotWriter(dir, zerolog.Nop())

	path, err := sw.Save("content", 42)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestSnapshotWriter_HandlePageChanged(t *testing.T) {
	dir := t.TempDir()
	sw := NewSnapshotWriter(dir, zerolog.Nop())

	checkedAt := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	sw.HandlePageChanged(watcher.PageChangedEvent{Content: "<p>changed</p>", CheckedAt: checkedAt})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "<p>changed</p>", string(content))
}
