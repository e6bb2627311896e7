// Package bookmarks validates bookmark files and counts their leaf entries.
// Files are otherwise treated as opaque blobs; nothing here interprets
// bookmark content beyond what reporting needs.
package bookmarks

import (
	"os"

	json "github.com/goccy/go-json"
)

// Validate reports whether path holds a usable bookmark file: it exists, is a
// regular file with non-zero size, and parses as a JSON document. It never
// returns an error; any failure mode means "not valid". Used both before a
// copy (gatekeeping the backup) and after (gatekeeping count reporting).
func Validate(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc any
	return json.Unmarshal(data, &doc) == nil
}

// CountFile decodes the bookmark document at path and counts its leaf entries.
// Invalid or unreadable files count as zero with ok=false.
func CountFile(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, false
	}
	return Count(doc), true
}
