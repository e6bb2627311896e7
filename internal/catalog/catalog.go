// Package catalog is the static browser catalog: a pure lookup from browser
// identifier to per-OS-class candidate subpaths. Adding browser support means
// adding an entry here; resolution logic never changes.
package catalog

import (
	"sort"

	"github.com/ondrovic/bookmark-backup/internal/types"
)

// patterns builds the pattern map for a browser; the Windows-side layout is
// shared between native Windows and an overlay mount.
func patterns(windows, darwin, linux []string) map[types.OSClass][]string {
	return map[types.OSClass][]string{
		types.OSNativeWindows:  windows,
		types.OSWindowsOverlay: windows,
		types.OSMacOS:          darwin,
		types.OSNativeLinux:    linux,
	}
}

// browsers holds the built-in catalog entries keyed by identifier.
var browsers = map[string]types.BrowserDescriptor{
	"chrome": {
		ID:          "chrome",
		DisplayName: "Google Chrome",
		PathPatterns: patterns(
			[]string{"Google/Chrome"},
			[]string{"Google/Chrome"},
			[]string{"google-chrome"},
		),
	},
	"edge": {
		ID:          "edge",
		DisplayName: "Microsoft Edge",
		PathPatterns: patterns(
			[]string{"Microsoft/Edge"},
			[]string{"Microsoft Edge"},
			[]string{"microsoft-edge"},
		),
	},
	"brave": {
		ID:          "brave",
		DisplayName: "Brave Browser",
		PathPatterns: patterns(
			[]string{"BraveSoftware/Brave-Browser"},
			[]string{"BraveSoftware/Brave-Browser"},
			[]string{"BraveSoftware/Brave-Browser"},
		),
	},
}

// Lookup returns the descriptor for a browser identifier.
func Lookup(id string) (types.BrowserDescriptor, bool) {
	desc, ok := browsers[id]
	return desc, ok
}

// IDs returns the supported browser identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(browsers))
	for id := range browsers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every catalog entry, ordered by identifier.
func All() []types.BrowserDescriptor {
	descs := make([]types.BrowserDescriptor, 0, len(browsers))
	for _, id := range IDs() {
		descs = append(descs, browsers[id])
	}
	return descs
}
