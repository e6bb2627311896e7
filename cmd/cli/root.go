// Package cli provides the Cobra-based CLI commands for bookmark-backup
// (backup, list, config, diagnose, history, watch, version).
package cli

import (
	"fmt"
	"runtime"

	sCli "github.com/ondrovic/common/utils/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd is the main Cobra command for the bookmark-backup CLI tool. It
// backs up browser bookmark files across Windows, macOS, Linux, and WSL.
var RootCmd = &cobra.Command{
	Use:   "bookmark-backup",
	Short: "Back up Chrome, Edge, and Brave bookmarks with timestamped copies and retention",
}

// clearTerminalScreen clears the terminal before non-quiet runs; tests may override.
var clearTerminalScreen = func(goos string) error {
	return sCli.ClearTerminalScreen(goos)
}

func init() {
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress spinner and status output (for piping to jq)")
	_ = viper.BindPFlags(RootCmd.PersistentFlags())
	RootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if viper.GetBool("quiet") {
			return nil
		}
		if err := clearTerminalScreen(runtime.GOOS); err != nil {
			return fmt.Errorf("error clearing terminal: %w", err)
		}
		return nil
	}
}

// Execute runs the RootCmd command, handling any errors that occur during its execution.
// Returns an error if the command fails to execute.
func Execute() error {

	if err := RootCmd.Execute(); err != nil {
		return err
	}

	return nil
}
