package cli

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/ondrovic/bookmark-backup/internal/backup"
	"github.com/ondrovic/bookmark-backup/internal/types"
)

func TestRunWatch_CorruptSettings(t *testing.T) {
	withCommandEnv(t, types.Settings{}, types.HostEnvironment{Class: types.OSNativeLinux})
	loadSettingsFunc = func(string) (types.Settings, error) {
		return types.Settings{}, errors.New("invalid character 'x'")
	}

	err := runWatch(nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestRunWatch_NoBrowserConfigured(t *testing.T) {
	withCommandEnv(t, types.Settings{}, types.HostEnvironment{Class: types.OSNativeLinux})

	err := runWatch(nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no browser configured")
}

func TestRunWatch_InitialBackupFailureStopsWatch(t *testing.T) {
	withCommandEnv(t, types.Settings{}, types.HostEnvironment{Class: types.OSNativeLinux})
	options.CustomPath = t.TempDir()

	origRun := runBackupFunc
	origQuiet := viper.GetBool("quiet")
	t.Cleanup(func() {
		runBackupFunc = origRun
		viper.Set("quiet", origQuiet)
	})
	viper.Set("quiet", true)
	runBackupFunc = func([]types.Profile, backup.Options) (*types.BackupSummary, error) {
		return nil, backup.ErrNoProfilesFound
	}

	err := runWatch(nil, nil)

	assert.ErrorIs(t, err, backup.ErrNoProfilesFound)
}
