// Package cleanup removes stale launcher state before a run.
package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// RemoveStaleMarkers deletes entries in dir whose name starts with prefix.
// OBS drops safe-mode sentinels when it was killed uncleanly; leaving them
// around makes the next launch stop on an interactive safe-mode prompt.
//
// A missing dir is a no-op: the target may never have run on this machine.
// Returns the number of entries removed.
func RemoveStaleMarkers(dir, prefix string, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("cleanup_dir_missing", "dir", dir)
			return 0, nil
		}
		return 0, fmt.Errorf("read cleanup dir %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("remove marker %s: %w", path, err)
		}
		logger.Info("stale_marker_removed", "path", path)
		removed++
	}

	if removed == 0 {
		logger.Debug("no_stale_markers", "dir", dir, "prefix", prefix)
	}
	return removed, nil
}
