package diagnostics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/browserutils/kooky"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondrovic/bookmark-backup/internal/types"
)

func noStores() []kooky.CookieStore {
	return nil
}

func TestReportIncludesHostAndConfigSections(t *testing.T) {
	var buf bytes.Buffer
	env := types.HostEnvironment{Class: types.OSNativeLinux}
	settings := types.Settings{BackupPath: t.TempDir()}

	Report(&buf, env, settings, noStores)

	out := buf.String()
	assert.Contains(t, out, "HOST ENVIRONMENT")
	assert.Contains(t, out, "OS class: native-linux")
	assert.Contains(t, out, "CONFIGURATION")
	assert.Contains(t, out, "Retention: keep 30 backups")
	assert.Contains(t, out, "no browser stores detected")
}

func TestReportOverlayWithoutAccounts(t *testing.T) {
	var buf bytes.Buffer
	env := types.HostEnvironment{
		Class:       types.OSWindowsOverlay,
		OverlayRoot: filepath.Join(t.TempDir(), "mnt", "c"),
	}

	Report(&buf, env, types.Settings{}, noStores)

	out := buf.String()
	assert.Contains(t, out, "Windows filesystem mount:")
	assert.Contains(t, out, "no accessible Windows accounts")
	assert.Contains(t, out, "backup path not configured")
}

func TestReportBackupPathNotDirectory(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "backups")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	reportBackupPath(&buf, file)

	assert.Contains(t, buf.String(), "not a directory")
}

func TestReportCandidateWithValidProfile(t *testing.T) {
	var buf bytes.Buffer
	candidate := t.TempDir()
	profileDir := filepath.Join(candidate, "User Data", "Default")
	require.NoError(t, os.MkdirAll(profileDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(profileDir, "Bookmarks"),
		[]byte(`{"bookmark_bar":{"type":"folder","children":[{"type":"url"}]}}`),
		0o644,
	))

	reportCandidate(&buf, candidate)

	out := buf.String()
	assert.Contains(t, out, "Default")
	assert.Contains(t, out, "1 bookmarks")
}
