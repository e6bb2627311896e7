package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ondrovic/bookmark-backup/internal/types"
)

const (
	// userDataDirName is the nested directory Chromium-family browsers keep
	// profiles under; the candidate itself is used when it is absent.
	userDataDirName = "User Data"
	// defaultProfilePrefix and numberedProfilePrefix are the two conventional
	// profile directory naming schemes.
	defaultProfilePrefix  = "Default"
	numberedProfilePrefix = "Profile"
	// bookmarkFileName is the fixed name of the bookmark file inside a profile.
	bookmarkFileName = "Bookmarks"
)

// ScanProfiles walks the candidates in order and returns the profiles of the
// first candidate that yields any, along with notes about candidates that
// were skipped (unreadable directories and the like). Stopping at the first
// hit avoids duplicate backups when one install is reachable through several
// equivalent paths. A host with no matching paths yields an empty result,
// never an error.
func ScanProfiles(candidates []string) ([]types.Profile, []string) {
	var notes []string
	for _, candidate := range candidates {
		profiles, candidateNotes := scanCandidate(candidate)
		notes = append(notes, candidateNotes...)
		if len(profiles) > 0 {
			return profiles, notes
		}
	}
	return nil, notes
}

// scanCandidate inspects one candidate directory for profile folders holding
// a bookmark file.
func scanCandidate(candidate string) ([]types.Profile, []string) {
	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		// Missing candidates are the common case and not worth a note.
		if err != nil && !os.IsNotExist(err) {
			return nil, []string{fmt.Sprintf("cannot access %s: %v", candidate, err)}
		}
		return nil, nil
	}

	root := candidate
	if userData := filepath.Join(candidate, userDataDirName); isDir(userData) {
		root = userData
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, []string{fmt.Sprintf("permission denied reading %s: %v", root, err)}
	}

	var profiles []types.Profile
	for _, entry := range entries {
		if !entry.IsDir() || !isProfileDirName(entry.Name()) {
			continue
		}
		bookmarkFile := filepath.Join(root, entry.Name(), bookmarkFileName)
		if info, err := os.Stat(bookmarkFile); err != nil || info.IsDir() {
			continue
		}
		profiles = append(profiles, types.Profile{
			Name:         entry.Name(),
			BookmarkFile: bookmarkFile,
		})
	}
	return profiles, nil
}

// isProfileDirName reports whether a directory name follows one of the two
// conventional profile naming schemes.
func isProfileDirName(name string) bool {
	return strings.HasPrefix(name, defaultProfilePrefix) ||
		strings.HasPrefix(name, numberedProfilePrefix)
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
