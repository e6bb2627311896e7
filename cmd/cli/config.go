package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ondrovic/bookmark-backup/internal/catalog"
	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils/cli"
	"github.com/ondrovic/bookmark-backup/internal/utils/formatters"
)

var (
	// configCmd groups the settings subcommands.
	configCmd = &cobra.Command{}
	// configSetFlags holds the values for 'config set'; only flags the user
	// actually changed are written to the settings document.
	configSetFlags = types.CliFlags{}
	// saveSettingsFunc persists the settings document; tests may override.
	saveSettingsFunc = config.Save
)

// init initializes the config command tree: 'config show' prints the current
// settings document, 'config set' updates individual fields.
func init() {
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or change persistent settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configCmd.AddCommand(showCmd, newConfigSetCmd())
	RootCmd.AddCommand(configCmd)
}

// newConfigSetCmd builds the 'config set' command; split out so tests can
// exercise flag parsing on a fresh command.
func newConfigSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:           "set [flags]",
		Short:         "Update settings",
		Long:          "Update one or more persistent settings; unspecified fields keep their current values",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConfigSet,
	}
	initConfigSetFlags(setCmd)
	return setCmd
}

// initConfigSetFlags registers the flags for 'config set'. They intentionally
// mirror the backup command's override flags.
func initConfigSetFlags(cmd *cobra.Command) {
	cli.RegisterFlag(cmd, "browser", "w", "", "Browser to back up: chrome, edge, or brave", &configSetFlags.Browser)
	cli.RegisterFlag(cmd, "custom-path", "c", "", "Custom browser data directory (overrides --browser)", &configSetFlags.CustomPath)
	cli.RegisterFlag(cmd, "windows-user", "u", "", "Windows account to read under /mnt/c/Users (WSL only)", &configSetFlags.WindowsUser)
	cli.RegisterFlag(cmd, "backup-path", "b", "", "Directory to write backups into", &configSetFlags.BackupPath)
	cli.RegisterFlag(cmd, "max-backups", "m", 0, "Number of backups to keep", &configSetFlags.MaxBackups)
}

// runConfigShow prints the settings document with syntax highlighting.
func runConfigShow(_ *cobra.Command, _ []string) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", config.Path(), err)
	}

	data, err := formatters.FormatAsJson(settings)
	if err != nil {
		return err
	}
	fmt.Printf("Settings file: %s\n", config.Path())
	return formatters.PrintPrettyJson(data)
}

// runConfigSet loads the current settings, applies only the flags the user
// set, validates them, and writes the document back.
func runConfigSet(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w (fix or delete the file)", config.Path(), err)
	}

	changed := false
	if cmd.Flags().Changed("custom-path") {
		selection := types.CustomBrowser(configSetFlags.CustomPath)
		settings.Browser = &selection
		changed = true
	} else if cmd.Flags().Changed("browser") {
		selection, err := selectionForID(configSetFlags.Browser)
		if err != nil {
			return err
		}
		settings.Browser = &selection
		changed = true
	}
	if cmd.Flags().Changed("windows-user") {
		settings.WindowsUser = configSetFlags.WindowsUser
		changed = true
	}
	if cmd.Flags().Changed("backup-path") {
		settings.BackupPath = configSetFlags.BackupPath
		changed = true
	}
	if cmd.Flags().Changed("max-backups") {
		if configSetFlags.MaxBackups < 1 {
			return fmt.Errorf("--max-backups must be at least 1, got %d", configSetFlags.MaxBackups)
		}
		settings.MaxBackups = configSetFlags.MaxBackups
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to set; pass at least one of --browser, --custom-path, --windows-user, --backup-path, --max-backups")
	}

	if err := saveSettingsFunc(config.Path(), settings); err != nil {
		return err
	}
	fmt.Printf("Settings saved to %s\n", config.Path())
	return nil
}

// selectionForID validates a browser id against the catalog and returns the
// matching selection.
func selectionForID(id string) (types.BrowserSelection, error) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	if _, ok := catalog.Lookup(normalized); !ok {
		return types.BrowserSelection{}, fmt.Errorf("unknown browser %q; choose one of: %s", id, strings.Join(catalog.IDs(), ", "))
	}
	return types.KnownBrowser(normalized), nil
}
