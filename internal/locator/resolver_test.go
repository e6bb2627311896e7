package locator

import (
	"path/filepath"
	"testing"

	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlayContext builds a ResolveContext for an overlay host with a selected account.
func overlayContext(account string) ResolveContext {
	return ResolveContext{
		Env: types.HostEnvironment{
			Class:       types.OSWindowsOverlay,
			OverlayRoot: "/mnt/c",
		},
		Home:    "/home/tester",
		Account: account,
	}
}

// TestResolveCandidates_OverlayKnownBrowser verifies candidate ordering:
// local app data before roaming, per catalog subpath.
func TestResolveCandidates_OverlayKnownBrowser(t *testing.T) {
	candidates, err := ResolveCandidates(overlayContext("alice"), types.KnownBrowser("chrome"))

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/mnt/c", "Users", "alice", "AppData", "Local", "Google", "Chrome"),
		filepath.Join("/mnt/c", "Users", "alice", "AppData", "Roaming", "Google", "Chrome"),
	}, candidates)
}

// TestResolveCandidates_OverlayRequiresAccount verifies a known browser cannot
// resolve without a selected Windows account.
func TestResolveCandidates_OverlayRequiresAccount(t *testing.T) {
	_, err := ResolveCandidates(overlayContext(""), types.KnownBrowser("chrome"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Windows account selected")
}

// TestResolveCandidates_OverlayCustomInsideMount verifies a custom path under
// the overlay root is used as-is.
func TestResolveCandidates_OverlayCustomInsideMount(t *testing.T) {
	sel := types.CustomBrowser("/mnt/c/PortableBrowser/Data")

	candidates, err := ResolveCandidates(overlayContext("alice"), sel)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("/mnt/c/PortableBrowser/Data")}, candidates)
}

// TestResolveCandidates_OverlayCustomOutsideMount verifies a Windows-relative
// custom path is anchored under the account root with backslashes normalized.
func TestResolveCandidates_OverlayCustomOutsideMount(t *testing.T) {
	sel := types.CustomBrowser(`AppData\Local\Thorium`)

	candidates, err := ResolveCandidates(overlayContext("alice"), sel)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/mnt/c", "Users", "alice", "AppData", "Local", "Thorium"),
	}, candidates)
}

// TestResolveCandidates_NativeWindows verifies env-provided app-data roots are
// used, local before roaming.
func TestResolveCandidates_NativeWindows(t *testing.T) {
	rc := ResolveContext{
		Env:            types.HostEnvironment{Class: types.OSNativeWindows},
		Home:           `C:\Users\bob`,
		LocalAppData:   filepath.Join("C:", "Users", "bob", "AppData", "Local"),
		RoamingAppData: filepath.Join("C:", "Users", "bob", "AppData", "Roaming"),
	}

	candidates, err := ResolveCandidates(rc, types.KnownBrowser("edge"))

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, filepath.Join(rc.LocalAppData, "Microsoft", "Edge"), candidates[0])
	assert.Equal(t, filepath.Join(rc.RoamingAppData, "Microsoft", "Edge"), candidates[1])
}

// TestResolveCandidates_MacOS verifies the Application Support anchor.
func TestResolveCandidates_MacOS(t *testing.T) {
	rc := ResolveContext{
		Env:  types.HostEnvironment{Class: types.OSMacOS},
		Home: "/Users/carol",
	}

	candidates, err := ResolveCandidates(rc, types.KnownBrowser("edge"))

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/Users/carol", "Library", "Application Support", "Microsoft Edge"),
	}, candidates)
}

// TestResolveCandidates_NativeLinux verifies the user-config anchor.
func TestResolveCandidates_NativeLinux(t *testing.T) {
	rc := ResolveContext{
		Env:  types.HostEnvironment{Class: types.OSNativeLinux},
		Home: "/home/dave",
	}

	candidates, err := ResolveCandidates(rc, types.KnownBrowser("brave"))

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/home/dave", ".config", "BraveSoftware", "Brave-Browser"),
	}, candidates)
}

// TestResolveCandidates_CustomOnNativeOS verifies custom paths are taken as-is
// outside overlay environments.
func TestResolveCandidates_CustomOnNativeOS(t *testing.T) {
	rc := ResolveContext{
		Env:  types.HostEnvironment{Class: types.OSNativeLinux},
		Home: "/home/dave",
	}

	candidates, err := ResolveCandidates(rc, types.CustomBrowser("/opt/thorium/data"))

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("/opt/thorium/data")}, candidates)
}

// TestResolveCandidates_UnsupportedOS verifies the sentinel error surfaces.
func TestResolveCandidates_UnsupportedOS(t *testing.T) {
	rc := ResolveContext{Env: types.HostEnvironment{Class: types.OSClass("plan9")}}

	_, err := ResolveCandidates(rc, types.KnownBrowser("chrome"))

	assert.ErrorIs(t, err, ErrUnsupportedEnvironment)
}

// TestResolveCandidates_UnknownBrowser verifies unknown identifiers are
// rejected on every resolution path.
func TestResolveCandidates_UnknownBrowser(t *testing.T) {
	tests := []struct {
		name string
		rc   ResolveContext
	}{
		{name: "overlay", rc: overlayContext("alice")},
		{name: "native windows", rc: ResolveContext{Env: types.HostEnvironment{Class: types.OSNativeWindows}}},
		{name: "macos", rc: ResolveContext{Env: types.HostEnvironment{Class: types.OSMacOS}, Home: "/Users/x"}},
		{name: "native linux", rc: ResolveContext{Env: types.HostEnvironment{Class: types.OSNativeLinux}, Home: "/home/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveCandidates(tt.rc, types.KnownBrowser("netscape"))
			assert.ErrorIs(t, err, ErrUnknownBrowser)
		})
	}
}

// TestInsideRoot verifies overlay containment checks, including the
// prefix-but-not-child trap (/mnt/cc).
func TestInsideRoot(t *testing.T) {
	assert.True(t, insideRoot("/mnt/c/Users/alice", "/mnt/c"))
	assert.True(t, insideRoot("/mnt/c", "/mnt/c"))
	assert.False(t, insideRoot("/mnt/cc/Users/alice", "/mnt/c"))
	assert.False(t, insideRoot("/home/alice", "/mnt/c"))
	assert.False(t, insideRoot("/mnt/c/x", ""))
}
