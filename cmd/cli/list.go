package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ondrovic/bookmark-backup/internal/bookmarks"
	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/utils/cli"
	"github.com/ondrovic/bookmark-backup/internal/utils/formatters"
)

// listedProfile is one discovered profile with its bookmark count, for display.
type listedProfile struct {
	Profile   string `json:"profile"`
	Path      string `json:"path"`
	Bookmarks int    `json:"bookmarks"`
	Valid     bool   `json:"valid"`
}

// listCmd shows the profiles a backup run would pick up.
var listCmd = &cobra.Command{}

// init initializes the list command and adds it to the root command.
func init() {
	listCmd = &cobra.Command{
		Use:   "list [flags]",
		Short: "List discovered profiles",
		Long:  "Resolve and scan the configured browser's data directories and list each profile with its bookmark count",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.RegisterFlag(listCmd, "json", "j", false, "Print the profile list as JSON", &options.JsonOutput)
	cli.RegisterFlag(listCmd, "browser", "w", "", "Browser to list: chrome, edge, or brave (default from config)", &options.Browser)
	cli.RegisterFlag(listCmd, "custom-path", "c", "", "Custom browser data directory to scan", &options.CustomPath)
	cli.RegisterFlag(listCmd, "windows-user", "u", "", "Windows account to read under /mnt/c/Users (WSL only)", &options.WindowsUser)
	_ = viper.BindPFlags(listCmd.Flags())
	RootCmd.AddCommand(listCmd)
}

// runList resolves and scans like the backup command, then prints what it
// found instead of copying.
func runList(_ *cobra.Command, _ []string) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", config.Path(), err)
	}

	flags := options

	selection, err := effectiveSelection(settings, flags)
	if err != nil {
		return err
	}

	profiles, notes, err := discoverProfiles(detectEnvironmentFunc(), settings, flags, selection)
	if err != nil {
		return err
	}
	for _, note := range notes {
		fmt.Fprintln(os.Stderr, note)
	}

	listed := make([]listedProfile, 0, len(profiles))
	for _, profile := range profiles {
		count, valid := bookmarks.CountFile(profile.BookmarkFile)
		listed = append(listed, listedProfile{
			Profile:   profile.Name,
			Path:      profile.BookmarkFile,
			Bookmarks: count,
			Valid:     valid,
		})
	}

	if flags.JsonOutput {
		data, err := formatters.FormatAsJson(listed)
		if err != nil {
			return err
		}
		formatters.PrintJson(data)
		return nil
	}

	if len(listed) == 0 {
		fmt.Printf("No profiles found for %s\n", selection)
		return nil
	}
	fmt.Printf("Profiles for %s:\n", selection)
	for _, item := range listed {
		status := fmt.Sprintf("%d bookmarks", item.Bookmarks)
		if !item.Valid {
			status = "invalid bookmark file"
		}
		fmt.Printf("  %-16s %s (%s)\n", item.Profile, item.Path, status)
	}
	return nil
}
