// Package backup materializes validated bookmark files into timestamped
// copies at a destination directory and prunes old copies under a fixed
// retention count.
package backup

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils"
	"github.com/ondrovic/bookmark-backup/internal/utils/formatters"
)

// BackupFilename builds the destination filename for one profile copy:
// {browserId}_bookmarks_{normalizedProfile}_{YYYYMMDD_HHMMSS}.json. The triple
// is unique within a run, so retention pruning never races an overwrite.
func BackupFilename(browserID, profileName string, ts time.Time) string {
	return fmt.Sprintf("%s_bookmarks_%s_%s.json",
		browserID,
		formatters.NormalizeProfileName(profileName),
		formatters.BackupTimestamp(ts),
	)
}

// materialize copies one profile's bookmark file into the destination
// directory, preserving the source's modification time, and returns the full
// destination path.
func materialize(profile types.Profile, browserID, destDir string, ts time.Time) (string, error) {
	dst := filepath.Join(destDir, BackupFilename(browserID, profile.Name, ts))
	if err := utils.CopyFile(profile.BookmarkFile, dst); err != nil {
		return "", fmt.Errorf("backing up %s: %w", profile.BookmarkFile, err)
	}
	return dst, nil
}
