package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/savioxavier/termlink"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ondrovic/bookmark-backup/internal/backup"
	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/environment"
	"github.com/ondrovic/bookmark-backup/internal/history"
	"github.com/ondrovic/bookmark-backup/internal/locator"
	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils/cli"
	"github.com/ondrovic/bookmark-backup/internal/utils/formatters"
	"github.com/ondrovic/bookmark-backup/internal/utils/spinners"
	"github.com/ondrovic/bookmark-backup/internal/utils/storage"
)

// spinnerI is the subset of spinner operations used by the backup flow; tests may inject a mock.
type spinnerI interface {
	Start() error
	Stop() error
	StopFail() error
	StopFailMessage(string)
	StopMessage(string)
}

var (
	// options holds the command-line flag values using the CliFlags struct.
	options = types.CliFlags{}
	// backupCmd is a Cobra command that discovers bookmark files and copies them.
	backupCmd = &cobra.Command{}
	// createSpinner creates a spinner; tests may override to simulate Start() failure.
	createSpinner = func(start, stopCh, stopMsg, failCh, failMsg string) spinnerI {
		return spinners.CreateSpinner(start, stopCh, stopMsg, failCh, failMsg)
	}
	// detectEnvironmentFunc classifies the host; tests may override.
	detectEnvironmentFunc = environment.Detect
	// loadSettingsFunc reads the persisted configuration document; tests may override.
	loadSettingsFunc = config.Load
	// runBackupFunc performs the validate/copy/prune run; tests may override.
	runBackupFunc = backup.Run
	// recordRunFunc journals a run's records; failures are reported but never fail the backup.
	recordRunFunc = recordRun
)

// init initializes the backup command with usage, description, and argument
// validation. It binds flags using Viper and adds the command to the root
// command for execution.
func init() {
	backupCmd = &cobra.Command{
		Use:   "backup [flags]",
		Short: "Back up bookmarks",
		Long:  "Discover the configured browser's profiles and copy each valid bookmark file into the backup directory, then prune old backups",
		Args:  cobra.NoArgs,
		RunE:  runBackup,
	}

	initBackupFlags(backupCmd)
	_ = viper.BindPFlags(backupCmd.Flags())
	RootCmd.AddCommand(backupCmd)
}

// initBackupFlags registers the command-line flags for the backup command.
// Unset flags fall back to the persisted configuration document.
func initBackupFlags(cmd *cobra.Command) {
	cli.RegisterFlag(cmd, "backup-path", "b", "", "Directory to write backups into (default from config)", &options.BackupPath)
	cli.RegisterFlag(cmd, "browser", "w", "", "Browser to back up: chrome, edge, or brave (default from config)", &options.Browser)
	cli.RegisterFlag(cmd, "custom-path", "c", "", "Custom browser data directory to back up instead of a known browser", &options.CustomPath)
	cli.RegisterFlag(cmd, "dry-run", "t", false, "Show what would be backed up without copying anything", &options.DryRun)
	cli.RegisterFlag(cmd, "json", "j", false, "Print the run summary as JSON", &options.JsonOutput)
	cli.RegisterFlag(cmd, "max-backups", "m", 0, "Number of backups to keep (default from config)", &options.MaxBackups)
	cli.RegisterFlag(cmd, "verbose", "v", false, "Show per-profile detail", &options.Verbose)
	cli.RegisterFlag(cmd, "windows-user", "u", "", "Windows account to read under /mnt/c/Users (WSL only)", &options.WindowsUser)
}

// runBackup executes the backup command: load configuration, resolve and scan
// profile candidates, then copy and prune.
func runBackup(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w (fix or delete the file)", config.Path(), err)
	}

	// Flag values write through into options; only the persistent quiet flag
	// lives in Viper.
	flags := options
	flags.Quiet = viper.GetBool("quiet")

	selection, err := effectiveSelection(settings, flags)
	if err != nil {
		return err
	}

	env := detectEnvironmentFunc()
	profiles, notes, err := discoverProfiles(env, settings, flags, selection)
	if err != nil {
		return err
	}
	if flags.Verbose {
		for _, note := range notes {
			fmt.Fprintln(os.Stderr, note)
		}
	}

	opts := backup.Options{
		Selection:   selection,
		Destination: effectiveDestination(settings, flags),
		MaxBackups:  effectiveMaxBackups(settings, flags),
	}

	if flags.DryRun {
		return printDryRun(profiles, opts)
	}

	summary, err := executeRun(profiles, opts, flags.Quiet)
	if err != nil {
		printRunGuidance(err, settings)
		return err
	}

	if err := recordRunFunc(summary.Records); err != nil && !flags.Quiet {
		fmt.Fprintf(os.Stderr, "warning: could not journal backup run: %v\n", err)
	}

	return printSummary(summary, flags)
}

// executeRun wraps the backup run in a spinner unless quiet output was requested.
func executeRun(profiles []types.Profile, opts backup.Options, quiet bool) (*types.BackupSummary, error) {
	if quiet {
		return runBackupFunc(profiles, opts)
	}

	spinner := createSpinner(
		fmt.Sprintf("Backing up %s bookmarks", opts.Selection),
		"✓", "Backup complete",
		"✗", "Backup failed",
	)
	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}

	summary, err := runBackupFunc(profiles, opts)
	if err != nil {
		spinner.StopFailMessage(fmt.Sprintf("Backup failed: %v", err))
		if stopErr := spinner.StopFail(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "spinner stop error: %v\n", stopErr)
		}
		return summary, err
	}

	spinner.StopMessage(fmt.Sprintf("Backed up %d profile(s) to %s",
		summary.Copied, termlink.ColorLink(summary.Destination, summary.Destination, "green")))
	if stopErr := spinner.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "spinner stop error: %v\n", stopErr)
	}
	return summary, nil
}

// effectiveSelection merges the browser flags over the persisted selection.
// A custom path flag wins over a browser id flag, which wins over config.
func effectiveSelection(settings types.Settings, flags types.CliFlags) (types.BrowserSelection, error) {
	switch {
	case flags.CustomPath != "":
		return types.CustomBrowser(flags.CustomPath), nil
	case flags.Browser != "":
		return selectionForID(flags.Browser)
	}
	selection := settings.Selection()
	if selection.IsZero() {
		return selection, fmt.Errorf("no browser configured; run 'bookmark-backup config set --browser <chrome|edge|brave>' or pass --browser")
	}
	return selection, nil
}

// discoverProfiles resolves candidate directories for the selection and scans
// them for profiles holding bookmark files.
func discoverProfiles(env types.HostEnvironment, settings types.Settings, flags types.CliFlags, selection types.BrowserSelection) ([]types.Profile, []string, error) {
	account := settings.WindowsUser
	if flags.WindowsUser != "" {
		account = flags.WindowsUser
	}

	rc, err := locator.NewResolveContext(env, account)
	if err != nil {
		return nil, nil, err
	}
	candidates, err := locator.ResolveCandidates(rc, selection)
	if err != nil {
		return nil, nil, err
	}

	profiles, notes := locator.ScanProfiles(candidates)
	return profiles, notes, nil
}

// effectiveDestination picks the backup directory: flag, then config, then
// a directory under the tool's data storage path.
func effectiveDestination(settings types.Settings, flags types.CliFlags) string {
	if flags.BackupPath != "" {
		return flags.BackupPath
	}
	if settings.BackupPath != "" {
		return settings.BackupPath
	}
	return filepath.Join(storage.GetDataStoragePath(), "backups")
}

// effectiveMaxBackups picks the retention count: flag, then config, then default.
func effectiveMaxBackups(settings types.Settings, flags types.CliFlags) int {
	if flags.MaxBackups > 0 {
		return flags.MaxBackups
	}
	return config.MaxBackupsOrDefault(settings)
}

// printDryRun lists what a run would copy without touching the filesystem.
func printDryRun(profiles []types.Profile, opts backup.Options) error {
	if len(profiles) == 0 {
		return backup.ErrNoProfilesFound
	}
	ts := time.Now()
	fmt.Printf("Would back up %d profile(s) to %s (keeping %d):\n", len(profiles), opts.Destination, opts.MaxBackups)
	for _, profile := range profiles {
		fmt.Printf("  %s <- %s\n", backup.BackupFilename(opts.Selection.BackupID(), profile.Name, ts), profile.BookmarkFile)
	}
	return nil
}

// printRunGuidance explains the two run-level failures in terms of the
// current configuration so the user knows which knob to turn.
func printRunGuidance(err error, settings types.Settings) {
	switch {
	case errors.Is(err, backup.ErrNoProfilesFound):
		fmt.Fprintln(os.Stderr, "Error: No browser bookmark files found")
		fmt.Fprintf(os.Stderr, "Current browser: %s\n", settingOrUnset(settings.Selection().String()))
		fmt.Fprintf(os.Stderr, "Current Windows user: %s\n", settingOrUnset(settings.WindowsUser))
		fmt.Fprintln(os.Stderr, "Try running configuration commands:")
		fmt.Fprintln(os.Stderr, "  bookmark-backup config set --browser <chrome|edge|brave>")
		fmt.Fprintln(os.Stderr, "  bookmark-backup config set --windows-user <name>   (WSL only)")
		fmt.Fprintln(os.Stderr, "  bookmark-backup diagnose")
	case errors.Is(err, backup.ErrAllCopiesFailed):
		fmt.Fprintln(os.Stderr, "Error: bookmark files were found but none could be copied")
		fmt.Fprintln(os.Stderr, "Run 'bookmark-backup diagnose' to check file permissions and validity")
	}
}

// settingOrUnset renders an empty configuration value as "Not configured".
func settingOrUnset(value string) string {
	if value == "" {
		return "Not configured"
	}
	return value
}

// printSummary renders the run outcome as JSON or as human-readable lines.
func printSummary(summary *types.BackupSummary, flags types.CliFlags) error {
	if flags.JsonOutput {
		data, err := formatters.FormatAsJson(summary)
		if err != nil {
			return err
		}
		formatters.PrintJson(data)
		return nil
	}

	if flags.Verbose {
		for _, record := range summary.Records {
			fmt.Printf("Backed up %s bookmarks to: %s\n", record.Profile, record.Destination)
			fmt.Printf("  - %d bookmarks backed up\n", record.Bookmarks)
		}
		for _, warning := range summary.Warnings {
			fmt.Println(warning)
		}
	}
	if flags.Quiet {
		fmt.Printf("Backed up %d profile(s) to %s\n", summary.Copied, summary.Destination)
	}
	return nil
}

// recordRun appends a run's records to the on-disk journal.
func recordRun(records []types.BackupRecord) error {
	if len(records) == 0 {
		return nil
	}
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordAll(records)
}
