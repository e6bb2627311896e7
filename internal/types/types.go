package types

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// cli related.
// CliFlags defines the structure for command-line flags, including options such as
// the backup destination, retention count, browser/user selection overrides,
// verbosity, and output formatting.
type CliFlags struct {
	BackupPath  string
	Browser     string
	CustomPath  string
	DryRun      bool
	JsonOutput  bool
	Limit       int
	MaxBackups  int
	Quiet       bool
	Verbose     bool
	WindowsUser string
}

// end cli related.

// host environment related.

// OSClass identifies the host operating system family for path resolution.
type OSClass string

const (
	// OSNativeWindows is Windows running directly on the host.
	OSNativeWindows OSClass = "native-windows"
	// OSMacOS is macOS.
	OSMacOS OSClass = "macos"
	// OSNativeLinux is Linux without a mounted Windows filesystem.
	OSNativeLinux OSClass = "native-linux"
	// OSWindowsOverlay is Linux with a Windows filesystem mounted at a fixed
	// point (WSL-style compatibility layer).
	OSWindowsOverlay OSClass = "linux-with-windows-overlay"
)

// HostEnvironment describes the detected host; immutable once detected per run.
type HostEnvironment struct {
	Class OSClass
	// OverlayRoot is the Windows filesystem mount point; set only when Class
	// is OSWindowsOverlay.
	OverlayRoot string
}

// end host environment related.

// browser related.

// BrowserDescriptor is a static catalog entry mapping a browser identifier to
// its per-OS-class candidate subpaths. Subpaths use forward slashes and are
// converted to host separators during resolution.
type BrowserDescriptor struct {
	ID           string
	DisplayName  string
	PathPatterns map[OSClass][]string
}

// BrowserSelection is a tagged variant: either a known catalog identifier or a
// user-supplied custom data directory. At most one of Known/CustomPath is set.
type BrowserSelection struct {
	Known      string
	CustomPath string
}

// KnownBrowser selects a catalog browser by identifier.
func KnownBrowser(id string) BrowserSelection {
	return BrowserSelection{Known: id}
}

// CustomBrowser selects an ad hoc browser data directory.
func CustomBrowser(path string) BrowserSelection {
	return BrowserSelection{CustomPath: path}
}

// IsCustom reports whether the selection carries a custom path.
func (s BrowserSelection) IsCustom() bool {
	return s.CustomPath != ""
}

// IsZero reports whether no browser has been selected.
func (s BrowserSelection) IsZero() bool {
	return s.Known == "" && s.CustomPath == ""
}

// BackupID returns the identifier used in backup filenames: the catalog id for
// known browsers, "custom" otherwise.
func (s BrowserSelection) BackupID() string {
	if s.IsCustom() {
		return "custom"
	}
	return s.Known
}

// String renders the selection for status output.
func (s BrowserSelection) String() string {
	if s.IsCustom() {
		return fmt.Sprintf("custom (%s)", s.CustomPath)
	}
	if s.Known == "" {
		return "not configured"
	}
	return s.Known
}

// customSelection is the persisted document shape for a custom browser path.
type customSelection struct {
	Custom string `json:"custom"`
}

// MarshalJSON writes a known browser as a bare string and a custom browser as
// {"custom": path}, matching the settings document shape.
func (s BrowserSelection) MarshalJSON() ([]byte, error) {
	if s.IsCustom() {
		return json.Marshal(customSelection{Custom: s.CustomPath})
	}
	return json.Marshal(s.Known)
}

// UnmarshalJSON accepts either a bare identifier string or a {"custom": path}
// object.
func (s *BrowserSelection) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = BrowserSelection{Known: id}
		return nil
	}
	var custom customSelection
	if err := json.Unmarshal(data, &custom); err != nil {
		return fmt.Errorf("browser selection must be an identifier or {\"custom\": path}: %w", err)
	}
	if custom.Custom == "" {
		return fmt.Errorf("custom browser selection is missing a path")
	}
	*s = BrowserSelection{CustomPath: custom.Custom}
	return nil
}

// Profile is a discovered browser profile directory holding a bookmark file.
type Profile struct {
	Name         string `json:"name"`
	BookmarkFile string `json:"bookmarkFile"`
}

// end browser related.

// backup run related.

// BackupRecord describes one materialized bookmark copy; immutable once written.
type BackupRecord struct {
	RunID       string    `json:"runId"`
	Browser     string    `json:"browser"`
	Profile     string    `json:"profile"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Bookmarks   int       `json:"bookmarks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BackupSummary aggregates the outcome of a single backup run.
type BackupSummary struct {
	RunID          string         `json:"runId"`
	Destination    string         `json:"destination"`
	ProfilesFound  int            `json:"profilesFound"`
	Copied         int            `json:"copied"`
	SkippedInvalid int            `json:"skippedInvalid"`
	CopyFailures   int            `json:"copyFailures"`
	Pruned         int            `json:"pruned"`
	Records        []BackupRecord `json:"records,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
}

// end backup run related.

// settings related.

// Settings is the persisted configuration document. The zero value means
// "not configured yet". The shape matches documents written by earlier
// versions of this tool, so existing files load unchanged.
type Settings struct {
	Browser     *BrowserSelection `json:"browser,omitempty"`
	WindowsUser string            `json:"windows_user,omitempty"`
	BackupPath  string            `json:"backup_path,omitempty"`
	MaxBackups  int               `json:"max_backups,omitempty"`
}

// Selection returns the configured browser selection, or the zero selection
// when none is configured.
func (s Settings) Selection() BrowserSelection {
	if s.Browser == nil {
		return BrowserSelection{}
	}
	return *s.Browser
}

// end settings related.
