// Package diagnostics renders a sectioned report that helps users work out
// why a backup finds nothing: host classification, candidate paths, profile
// checks, configuration sanity, and a cross-check against the browser stores
// kooky can see on the host.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/browserutils/kooky"
	"github.com/fatih/color"

	"github.com/ondrovic/bookmark-backup/internal/bookmarks"
	"github.com/ondrovic/bookmark-backup/internal/catalog"
	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/environment"
	"github.com/ondrovic/bookmark-backup/internal/locator"
	"github.com/ondrovic/bookmark-backup/internal/types"
)

var (
	okMark   = color.New(color.FgHiGreen).Sprint("✓")
	failMark = color.New(color.FgHiRed).Sprint("✗")
	noneMark = color.New(color.FgHiYellow).Sprint("○")
)

// Report writes the full diagnosis. The kooky store provider is injected so
// tests can run without touching real browser installs.
func Report(w io.Writer, env types.HostEnvironment, settings types.Settings, storeProvider func() []kooky.CookieStore) {
	printHeader(w, "HOST ENVIRONMENT")
	fmt.Fprintf(w, "OS class: %s\n", env.Class)
	if env.Class == types.OSWindowsOverlay {
		fmt.Fprintf(w, "Windows filesystem mount: %s\n", env.OverlayRoot)
		if accounts := locator.AvailableAccounts(env.OverlayRoot); len(accounts) > 0 {
			fmt.Fprintf(w, "Accessible Windows accounts: %s\n", strings.Join(accounts, ", "))
		} else {
			fmt.Fprintf(w, "%s no accessible Windows accounts under %s\n", failMark, env.OverlayRoot)
		}
	}
	if marker := environment.MarkerLine(); marker != "" {
		fmt.Fprintf(w, "Kernel descriptor: %s\n", marker)
	}

	printHeader(w, "CONFIGURATION")
	fmt.Fprintf(w, "Settings file: %s\n", config.Path())
	fmt.Fprintf(w, "Browser: %s\n", settings.Selection())
	if settings.WindowsUser != "" {
		fmt.Fprintf(w, "Windows user: %s\n", settings.WindowsUser)
	}
	reportBackupPath(w, settings.BackupPath)
	fmt.Fprintf(w, "Retention: keep %d backups\n", config.MaxBackupsOrDefault(settings))

	printHeader(w, "CANDIDATE PATHS")
	reportCandidates(w, env, settings)

	printHeader(w, "BROWSER STORES (kooky cross-check)")
	reportKookyStores(w, storeProvider)
}

// reportBackupPath checks the destination exists and is writable.
func reportBackupPath(w io.Writer, backupPath string) {
	if backupPath == "" {
		fmt.Fprintf(w, "%s backup path not configured\n", failMark)
		return
	}
	info, err := os.Stat(backupPath)
	switch {
	case err != nil:
		fmt.Fprintf(w, "%s backup path does not exist yet: %s (created on first backup)\n", noneMark, backupPath)
	case !info.IsDir():
		fmt.Fprintf(w, "%s backup path is not a directory: %s\n", failMark, backupPath)
	default:
		fmt.Fprintf(w, "%s backup path: %s\n", okMark, backupPath)
	}
}

// reportCandidates resolves and inspects every candidate for the configured
// browser, or for all catalog browsers when none is configured.
func reportCandidates(w io.Writer, env types.HostEnvironment, settings types.Settings) {
	rc, err := locator.NewResolveContext(env, settings.WindowsUser)
	if err != nil {
		fmt.Fprintf(w, "%s cannot build resolution context: %v\n", failMark, err)
		return
	}

	selections := []types.BrowserSelection{settings.Selection()}
	if settings.Selection().IsZero() {
		selections = selections[:0]
		for _, id := range catalog.IDs() {
			selections = append(selections, types.KnownBrowser(id))
		}
	}

	for _, sel := range selections {
		fmt.Fprintf(w, "\n[%s]\n", sel)
		candidates, err := locator.ResolveCandidates(rc, sel)
		if err != nil {
			fmt.Fprintf(w, "  %s %v\n", failMark, err)
			continue
		}
		for _, candidate := range candidates {
			reportCandidate(w, candidate)
		}
	}
}

// reportCandidate prints one candidate directory with its profiles, bookmark
// file sizes, validity, and entry counts.
func reportCandidate(w io.Writer, candidate string) {
	if _, err := os.Stat(candidate); err != nil {
		fmt.Fprintf(w, "  %s %s\n", noneMark, candidate)
		return
	}
	fmt.Fprintf(w, "  %s %s\n", okMark, candidate)

	profiles, notes := locator.ScanProfiles([]string{candidate})
	for _, note := range notes {
		fmt.Fprintf(w, "    %s %s\n", failMark, note)
	}
	for _, profile := range profiles {
		info, err := os.Stat(profile.BookmarkFile)
		if err != nil {
			fmt.Fprintf(w, "    %s %s: unreadable bookmark file\n", failMark, profile.Name)
			continue
		}
		if !bookmarks.Validate(profile.BookmarkFile) {
			fmt.Fprintf(w, "    %s %s: bookmark file invalid (%d bytes)\n", failMark, profile.Name, info.Size())
			continue
		}
		count, _ := bookmarks.CountFile(profile.BookmarkFile)
		fmt.Fprintf(w, "    %s %s: %d bookmarks (%d bytes)\n", okMark, profile.Name, count, info.Size())
	}
	if len(profiles) == 0 {
		fmt.Fprintf(w, "    %s no profile directories with bookmark files\n", noneMark)
	}
}

// reportKookyStores lists browser profile stores kooky detects, as an
// independent signal that a browser is installed even when no candidate path
// matched.
func reportKookyStores(w io.Writer, storeProvider func() []kooky.CookieStore) {
	stores := storeProvider()
	if len(stores) == 0 {
		fmt.Fprintf(w, "%s no browser stores detected\n", noneMark)
		return
	}

	seen := make(map[string]bool)
	for _, store := range stores {
		line := fmt.Sprintf("%s / %s", store.Browser(), store.Profile())
		if seen[line] {
			store.Close()
			continue
		}
		seen[line] = true
		if path := store.FilePath(); path != "" {
			fmt.Fprintf(w, "%s %s (%s)\n", okMark, line, path)
		} else {
			fmt.Fprintf(w, "%s %s\n", okMark, line)
		}
		store.Close()
	}
}

// printHeader writes a section banner.
func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n %s\n%s\n", strings.Repeat("=", 60), title, strings.Repeat("=", 60))
}
