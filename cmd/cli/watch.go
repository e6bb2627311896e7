package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ondrovic/bookmark-backup/internal/backup"
	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/utils/cli"
	"github.com/ondrovic/bookmark-backup/internal/utils/spinners"
	"github.com/ondrovic/bookmark-backup/internal/watcher"
)

var (
	// watchCmd backs up continuously whenever the browser rewrites a bookmark file.
	watchCmd = &cobra.Command{}
	// watchDebounce is how long changes must settle before a backup is taken.
	watchDebounce time.Duration
)

// init initializes the watch command and adds it to the root command.
func init() {
	watchCmd = &cobra.Command{
		Use:   "watch [flags]",
		Short: "Watch and back up on change",
		Long:  "Take an initial backup, then keep watching the bookmark files and back up again whenever the browser rewrites them; stop with Ctrl-C",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	cli.RegisterFlag(watchCmd, "debounce", "d", watcher.DefaultDebounce, "How long changes must settle before backing up", &watchDebounce)
	cli.RegisterFlag(watchCmd, "browser", "w", "", "Browser to watch: chrome, edge, or brave (default from config)", &options.Browser)
	cli.RegisterFlag(watchCmd, "custom-path", "c", "", "Custom browser data directory to watch", &options.CustomPath)
	cli.RegisterFlag(watchCmd, "backup-path", "b", "", "Directory to write backups into (default from config)", &options.BackupPath)
	cli.RegisterFlag(watchCmd, "max-backups", "m", 0, "Number of backups to keep (default from config)", &options.MaxBackups)
	cli.RegisterFlag(watchCmd, "windows-user", "u", "", "Windows account to read under /mnt/c/Users (WSL only)", &options.WindowsUser)
	_ = viper.BindPFlags(watchCmd.Flags())
	RootCmd.AddCommand(watchCmd)
}

// runWatch takes an initial backup and then re-runs one backup per settled
// burst of bookmark file changes until interrupted.
func runWatch(_ *cobra.Command, _ []string) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w (fix or delete the file)", config.Path(), err)
	}

	flags := options
	flags.Quiet = viper.GetBool("quiet")

	selection, err := effectiveSelection(settings, flags)
	if err != nil {
		return err
	}

	env := detectEnvironmentFunc()
	profiles, _, err := discoverProfiles(env, settings, flags, selection)
	if err != nil {
		return err
	}

	opts := backup.Options{
		Selection:   selection,
		Destination: effectiveDestination(settings, flags),
		MaxBackups:  effectiveMaxBackups(settings, flags),
	}

	if _, err := executeRun(profiles, opts, flags.Quiet); err != nil {
		printRunGuidance(err, settings)
		return err
	}

	files := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		files = append(files, profile.BookmarkFile)
	}

	w := watcher.New(files, watchDebounce)
	w.OnChange = func(path string) {
		// Rescan so profiles added since startup are picked up too.
		current, _, err := discoverProfiles(env, settings, flags, selection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rescan failed: %v\n", err)
			return
		}
		summary, err := runBackupFunc(current, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "backup after change to %s failed: %v\n", path, err)
			return
		}
		if err := recordRunFunc(summary.Records); err != nil && !flags.Quiet {
			fmt.Fprintf(os.Stderr, "warning: could not journal backup run: %v\n", err)
		}
		if !flags.Quiet {
			fmt.Printf("Backed up %d profile(s) after change to %s\n", summary.Copied, path)
		}
	}
	if !flags.Quiet {
		w.Logf = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flags.Quiet {
		waiting := spinners.CreateSpinner(
			fmt.Sprintf("Watching %d bookmark file(s), Ctrl-C to stop", len(files)),
			"✓", "Watch stopped",
			"✗", "Watch failed",
		)
		if err := waiting.Start(); err == nil {
			spinners.StopOnSignal(waiting)
		}
	}

	return w.Watch(ctx)
}
