package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// backupGlob matches the filenames this tool materializes; retention only
// ever touches files in this shape.
const backupGlob = "*_bookmarks_*.json"

// EnforceRetention keeps the `keep` most recently modified backup files in
// dir and deletes the rest. It returns the deleted filenames and warnings for
// files that could not be inspected or removed; a file that cannot be deleted
// is left in place and does not block further cleanup.
func EnforceRetention(dir string, keep int) (deleted []string, warnings []string) {
	if keep < 1 {
		keep = 1
	}

	// The directory is listed and basenames matched against the pattern, so a
	// destination path containing glob metacharacters stays literal.
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("could not list backup directory %s: %v", dir, err)}
	}

	type backupFile struct {
		path  string
		mtime int64
	}
	files := make([]backupFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(backupGlob, entry.Name())
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not match %s: %v", entry.Name(), err))
			continue
		}
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not inspect %s: %v", entry.Name(), err))
			continue
		}
		files = append(files, backupFile{path: filepath.Join(dir, entry.Name()), mtime: info.ModTime().UnixNano()})
	}

	// Most recent first; everything past the retention count goes.
	sort.Slice(files, func(i, j int) bool { return files[i].mtime > files[j].mtime })

	if len(files) <= keep {
		return nil, warnings
	}
	for _, old := range files[keep:] {
		if err := os.Remove(old.path); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not remove old backup %s: %v", filepath.Base(old.path), err))
			continue
		}
		deleted = append(deleted, filepath.Base(old.path))
	}
	return deleted, warnings
}
