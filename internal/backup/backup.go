package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ondrovic/bookmark-backup/internal/bookmarks"
	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils"
)

var (
	// ErrNoProfilesFound means resolution and scanning produced nothing usable.
	ErrNoProfilesFound = errors.New("no browser bookmark files found")
	// ErrAllCopiesFailed means profiles were found but not a single copy landed.
	ErrAllCopiesFailed = errors.New("no bookmark files were successfully backed up")
)

// timeNow stamps a run; tests may override for deterministic filenames.
var timeNow = time.Now

// newRunID tags records of one run; tests may override.
var newRunID = uuid.NewString

// Options configures a single backup run. The configuration document is read
// once by the caller and handed in here as plain data.
type Options struct {
	// Selection identifies the browser, for filename prefixes.
	Selection types.BrowserSelection
	// Destination is the backup directory; created (with parents) if absent.
	Destination string
	// MaxBackups is the retention count applied after a successful run.
	MaxBackups int
}

// Run validates each discovered profile, copies the valid ones into the
// destination with collision-free names, and prunes backups beyond the
// retention count. Per-profile failures are downgraded to summary warnings;
// only a run with nothing to back up, or nothing successfully copied, returns
// an error. The returned summary is populated in all cases.
func Run(profiles []types.Profile, opts Options) (*types.BackupSummary, error) {
	summary := &types.BackupSummary{
		RunID:         newRunID(),
		Destination:   opts.Destination,
		ProfilesFound: len(profiles),
	}

	if len(profiles) == 0 {
		return summary, ErrNoProfilesFound
	}

	if err := utils.EnsureDirExists(opts.Destination); err != nil {
		return summary, fmt.Errorf("cannot create backup destination %s: %w", opts.Destination, err)
	}

	// One timestamp for the whole run keeps a run's files grouped and the
	// (browser, profile, timestamp) triple unique.
	ts := timeNow()
	browserID := opts.Selection.BackupID()

	for _, profile := range profiles {
		if !bookmarks.Validate(profile.BookmarkFile) {
			summary.SkippedInvalid++
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("skipping invalid bookmark file: %s", profile.BookmarkFile))
			continue
		}

		dst, err := materialize(profile, browserID, opts.Destination, ts)
		if err != nil {
			summary.CopyFailures++
			summary.Warnings = append(summary.Warnings, err.Error())
			continue
		}

		count, _ := bookmarks.CountFile(dst)
		summary.Records = append(summary.Records, types.BackupRecord{
			RunID:       summary.RunID,
			Browser:     browserID,
			Profile:     profile.Name,
			Source:      profile.BookmarkFile,
			Destination: dst,
			Bookmarks:   count,
			CreatedAt:   ts,
		})
		summary.Copied++
	}

	if summary.Copied == 0 {
		return summary, ErrAllCopiesFailed
	}

	deleted, warnings := EnforceRetention(opts.Destination, opts.MaxBackups)
	summary.Pruned = len(deleted)
	for _, name := range deleted {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("removed old backup: %s", name))
	}
	summary.Warnings = append(summary.Warnings, warnings...)

	return summary, nil
}
