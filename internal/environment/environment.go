// Package environment classifies the host OS and detects a mounted Windows
// filesystem overlay (WSL-style compatibility layer).
package environment

import (
	"bytes"
	"os"
	"runtime"

	"github.com/ondrovic/bookmark-backup/internal/types"
)

const (
	// overlayMarkerPath is the kernel version descriptor consulted for the
	// overlay vendor string.
	overlayMarkerPath = "/proc/version"
	// overlayVendor appears in the marker when the kernel is provided by the
	// Windows compatibility layer.
	overlayVendor = "microsoft"
	// DefaultOverlayRoot is the conventional mount point of the Windows
	// filesystem under the compatibility layer.
	DefaultOverlayRoot = "/mnt/c"
)

// Detect classifies the current host. It never fails: an unreadable overlay
// marker is treated as "no overlay", and an unrecognized OS is carried through
// so path resolution can reject it.
func Detect() types.HostEnvironment {
	return detect(runtime.GOOS, overlayMarkerPath)
}

// detect is the testable core of Detect, parameterized on the reported OS and
// the marker file location.
func detect(goos, markerPath string) types.HostEnvironment {
	switch goos {
	case "windows":
		return types.HostEnvironment{Class: types.OSNativeWindows}
	case "darwin":
		return types.HostEnvironment{Class: types.OSMacOS}
	case "linux":
		if overlayActive(markerPath) {
			return types.HostEnvironment{
				Class:       types.OSWindowsOverlay,
				OverlayRoot: DefaultOverlayRoot,
			}
		}
		return types.HostEnvironment{Class: types.OSNativeLinux}
	default:
		return types.HostEnvironment{Class: types.OSClass(goos)}
	}
}

// overlayActive reports whether the kernel version descriptor names the
// overlay vendor. A missing or unreadable marker means no overlay.
func overlayActive(markerPath string) bool {
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return false
	}
	return bytes.Contains(bytes.ToLower(data), []byte(overlayVendor))
}

// MarkerLine returns the raw overlay marker contents for diagnostics, or an
// empty string if it cannot be read.
func MarkerLine() string {
	data, err := os.ReadFile(overlayMarkerPath)
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(data))
}
