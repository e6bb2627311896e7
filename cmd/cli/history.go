package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ondrovic/bookmark-backup/internal/history"
	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils/cli"
	"github.com/ondrovic/bookmark-backup/internal/utils/formatters"
)

// defaultHistoryLimit bounds the journal listing when --limit is not given.
const defaultHistoryLimit = 20

var (
	// historyCmd lists past backup runs from the journal.
	historyCmd = &cobra.Command{}
	// openHistoryFunc opens the journal; tests may override.
	openHistoryFunc = func() (*history.Store, error) {
		return history.Open(history.DefaultPath())
	}
)

// init initializes the history command and adds it to the root command.
func init() {
	historyCmd = &cobra.Command{
		Use:   "history [flags]",
		Short: "Show backup history",
		Long:  "List the most recent backup records from the journal, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cli.RegisterFlag(historyCmd, "limit", "l", defaultHistoryLimit, "Maximum number of records to show", &options.Limit)
	cli.RegisterFlag(historyCmd, "json", "j", false, "Print the records as JSON", &options.JsonOutput)
	_ = viper.BindPFlags(historyCmd.Flags())
	RootCmd.AddCommand(historyCmd)
}

// runHistory prints recent journal records.
func runHistory(_ *cobra.Command, _ []string) error {
	limit := options.Limit
	if limit < 1 {
		limit = defaultHistoryLimit
	}

	store, err := openHistoryFunc()
	if err != nil {
		return fmt.Errorf("cannot open backup journal: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if options.JsonOutput {
		data, err := formatters.FormatAsJson(records)
		if err != nil {
			return err
		}
		formatters.PrintJson(data)
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No backups recorded yet")
		return nil
	}
	printHistoryRecords(records)
	return nil
}

// printHistoryRecords renders journal records as aligned lines, newest first.
func printHistoryRecords(records []types.BackupRecord) {
	for _, record := range records {
		fmt.Printf("%s  %-8s %-16s %6d bookmarks  %s\n",
			record.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			record.Browser,
			record.Profile,
			record.Bookmarks,
			record.Destination,
		)
	}
}
