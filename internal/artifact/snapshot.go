package artifact

import (
	"os"
	"path/filepath"
	"strconv"

	"fwwatch/internal/common/errorwrapper"
	"fwwatch/internal/watcher"

	"github.com/rs/zerolog"
)

// SnapshotWriter persists page snapshots to timestamped files so a changed
// page can be inspected after the fact.
type SnapshotWriter struct {
	logger zerolog.Logger
	dir    string
}

// NewSnapshotWriter creates a snapshot writer rooted at dir
func NewSnapshotWriter(dir string, logger zerolog.Logger) *SnapshotWriter {
	return &SnapshotWriter{
		logger: logger.With().Str("component", "SnapshotWriter").Logger(),
		dir:    dir,
	}
}

// HandlePageChanged is the page-changed observer: it writes the new page
// content to page_<unix>.html under the snapshot directory.
func (sw *SnapshotWriter) HandlePageChanged(event watcher.PageChangedEvent) {
	path, err := sw.Save(event.Content, event.CheckedAt.Unix())
	if err != nil {
		sw.logger.Error().Err(err).Msg("Failed to save page snapshot")
		return
	}
	sw.logger.Info().Str("path", path).Msg("Page snapshot saved")
}

// Save writes content to a timestamped snapshot file and returns its path
func (sw *SnapshotWriter) Save(content string, unixTime int64) (string, error) {
	if err := os.MkdirAll(sw.dir, 0755); err != nil {
		return "", errorwrapper.WrapError(err, "failed to create snapshot directory")
	}

	path := filepath.Join(sw.dir, "page_"+strconv.FormatInt(unixTime, 10)+".html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errorwrapper.WrapError(err, "failed to write page snapshot")
	}
	return path, nil
}
