// Package config loads and saves the persisted settings document. The
// document is read once per run and passed into the engine as plain data;
// nothing here keeps ambient state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils"
	"github.com/ondrovic/bookmark-backup/internal/utils/storage"
)

const settingsFileName = "config.json"

// DefaultMaxBackups is the retention count used when none is configured.
const DefaultMaxBackups = 30

// Path returns the per-user location of the settings document.
func Path() string {
	return filepath.Join(storage.GetDataStoragePath(), settingsFileName)
}

// Load reads the settings document at path. A missing document is a first run
// and yields zero settings with no error; a document that exists but cannot
// be read or parsed also yields zero settings, with the error returned so the
// caller can warn and continue.
func Load(path string) (types.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Settings{}, nil
		}
		return types.Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var settings types.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return types.Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return settings, nil
}

// Save writes the settings document to path, creating the parent directory if
// needed.
func Save(path string, settings types.Settings) error {
	if err := utils.EnsureDirExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// MaxBackupsOrDefault returns the configured retention count, or the default
// when unset.
func MaxBackupsOrDefault(settings types.Settings) int {
	if settings.MaxBackups > 0 {
		return settings.MaxBackups
	}
	return DefaultMaxBackups
}
