// Package locator turns a browser selection and host environment into the
// ordered candidate directories that may hold profile data, then scans those
// candidates for profiles and their bookmark files.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ondrovic/bookmark-backup/internal/catalog"
	"github.com/ondrovic/bookmark-backup/internal/types"
)

// ErrUnsupportedEnvironment is returned when the host OS class is not one the
// resolver knows how to build candidate paths for.
var ErrUnsupportedEnvironment = errors.New("unsupported operating system")

// ErrUnknownBrowser is returned when a known-browser selection names an
// identifier the catalog does not carry.
var ErrUnknownBrowser = errors.New("unknown browser")

// ResolveContext carries the host- and account-specific roots candidate paths
// are anchored under. Building it up front keeps resolution itself free of
// environment reads, so any host can be simulated in tests.
type ResolveContext struct {
	Env types.HostEnvironment
	// Home is the current user's home directory.
	Home string
	// Account is the selected Windows account name; consulted only for
	// overlay and native-windows environments.
	Account string
	// LocalAppData and RoamingAppData are the native-Windows app-data roots,
	// from the environment or derived from Home.
	LocalAppData   string
	RoamingAppData string
}

// NewResolveContext builds a ResolveContext for the current host. The Windows
// app-data roots come from LOCALAPPDATA/APPDATA, falling back to the
// conventional locations under the home directory.
func NewResolveContext(env types.HostEnvironment, account string) (ResolveContext, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return ResolveContext{}, fmt.Errorf("determining home directory: %w", err)
	}

	localAppData := os.Getenv("LOCALAPPDATA")
	roamingAppData := os.Getenv("APPDATA")
	if localAppData == "" {
		localAppData = filepath.Join(home, "AppData", "Local")
	}
	if roamingAppData == "" {
		roamingAppData = filepath.Join(home, "AppData", "Roaming")
	}

	return ResolveContext{
		Env:            env,
		Home:           home,
		Account:        account,
		LocalAppData:   localAppData,
		RoamingAppData: roamingAppData,
	}, nil
}

// ResolveCandidates expands the selection into an ordered sequence of
// candidate directories for the host environment. Order matters: the scanner
// stops at the first candidate that yields profiles.
func ResolveCandidates(rc ResolveContext, sel types.BrowserSelection) ([]string, error) {
	switch rc.Env.Class {
	case types.OSWindowsOverlay:
		return resolveOverlay(rc, sel)
	case types.OSNativeWindows:
		return resolveWindows(rc, sel)
	case types.OSMacOS:
		return resolveHomeAnchored(rc, sel, filepath.Join(rc.Home, "Library", "Application Support"), types.OSMacOS)
	case types.OSNativeLinux:
		return resolveHomeAnchored(rc, sel, filepath.Join(rc.Home, ".config"), types.OSNativeLinux)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEnvironment, rc.Env.Class)
	}
}

// resolveOverlay anchors candidates under the selected account on the mounted
// Windows filesystem. Per catalog subpath, the local app-data location is
// checked before the roaming one.
func resolveOverlay(rc ResolveContext, sel types.BrowserSelection) ([]string, error) {
	if sel.IsCustom() {
		if insideRoot(sel.CustomPath, rc.Env.OverlayRoot) {
			return []string{filepath.Clean(sel.CustomPath)}, nil
		}
		accountRoot, err := overlayAccountRoot(rc)
		if err != nil {
			return nil, err
		}
		// A path outside the mount is taken as Windows-relative; normalize
		// backslashes before anchoring it under the account.
		rel := strings.ReplaceAll(sel.CustomPath, `\`, "/")
		return []string{filepath.Join(accountRoot, filepath.FromSlash(rel))}, nil
	}

	accountRoot, err := overlayAccountRoot(rc)
	if err != nil {
		return nil, err
	}
	desc, ok := catalog.Lookup(sel.Known)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrowser, sel.Known)
	}

	var candidates []string
	for _, sub := range desc.PathPatterns[types.OSWindowsOverlay] {
		rel := filepath.FromSlash(sub)
		candidates = append(candidates,
			filepath.Join(accountRoot, "AppData", "Local", rel),
			filepath.Join(accountRoot, "AppData", "Roaming", rel),
		)
	}
	return candidates, nil
}

// resolveWindows anchors candidates under the native app-data roots, local
// before roaming per subpath.
func resolveWindows(rc ResolveContext, sel types.BrowserSelection) ([]string, error) {
	if sel.IsCustom() {
		return []string{filepath.Clean(sel.CustomPath)}, nil
	}
	desc, ok := catalog.Lookup(sel.Known)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrowser, sel.Known)
	}

	var candidates []string
	for _, sub := range desc.PathPatterns[types.OSNativeWindows] {
		rel := filepath.FromSlash(sub)
		candidates = append(candidates,
			filepath.Join(rc.LocalAppData, rel),
			filepath.Join(rc.RoamingAppData, rel),
		)
	}
	return candidates, nil
}

// resolveHomeAnchored covers macOS and native Linux, which share a single
// per-user config root.
func resolveHomeAnchored(rc ResolveContext, sel types.BrowserSelection, root string, class types.OSClass) ([]string, error) {
	if sel.IsCustom() {
		return []string{filepath.Clean(sel.CustomPath)}, nil
	}
	desc, ok := catalog.Lookup(sel.Known)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrowser, sel.Known)
	}

	var candidates []string
	for _, sub := range desc.PathPatterns[class] {
		candidates = append(candidates, filepath.Join(root, filepath.FromSlash(sub)))
	}
	return candidates, nil
}

// overlayAccountRoot returns the selected account's profile root on the
// mounted Windows filesystem.
func overlayAccountRoot(rc ResolveContext) (string, error) {
	if rc.Account == "" {
		return "", fmt.Errorf("no Windows account selected; run 'bookmark-backup config set --windows-user <name>'")
	}
	return filepath.Join(rc.Env.OverlayRoot, "Users", rc.Account), nil
}

// insideRoot reports whether path already falls inside the overlay mount.
func insideRoot(path, root string) bool {
	if root == "" {
		return false
	}
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// AvailableAccounts lists account directories under the overlay's Users root
// that the current process can actually read. Hidden entries and unreadable
// accounts are skipped.
func AvailableAccounts(overlayRoot string) []string {
	usersRoot := filepath.Join(overlayRoot, "Users")
	entries, err := os.ReadDir(usersRoot)
	if err != nil {
		return nil
	}

	var accounts []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := os.ReadDir(filepath.Join(usersRoot, entry.Name())); err != nil {
			continue
		}
		accounts = append(accounts, entry.Name())
	}
	return accounts
}
