package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // Register all browser support
	"github.com/spf13/cobra"

	"github.com/ondrovic/bookmark-backup/internal/config"
	"github.com/ondrovic/bookmark-backup/internal/diagnostics"
)

// diagnoseCmd prints the full environment and configuration report.
var diagnoseCmd = &cobra.Command{}

// init initializes the diagnose command and adds it to the root command.
func init() {
	diagnoseCmd = &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose bookmark discovery",
		Long:  "Report the host environment, configuration, candidate browser paths, and detected browser stores to explain why a backup finds nothing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeProvider := func() []kooky.CookieStore {
				return kooky.FindAllCookieStores(context.TODO())
			}
			return runDiagnose(storeProvider)
		},
	}

	RootCmd.AddCommand(diagnoseCmd)
}

// runDiagnose loads settings and writes the report to stdout. A corrupt
// settings file is itself a finding, so it is reported rather than fatal.
func runDiagnose(storeProvider func() []kooky.CookieStore) error {
	settings, err := loadSettingsFunc(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot read %s: %v\n", config.Path(), err)
	}

	diagnostics.Report(os.Stdout, detectEnvironmentFunc(), settings, storeProvider)
	return nil
}
