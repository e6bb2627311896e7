package cli

import (
	"go.szostok.io/version/extension"
)

const (
	// RepoOwner is the GitHub account that hosts this project.
	RepoOwner = "ondrovic"
	// RepoName is the GitHub repository name, used for upgrade notices.
	RepoName = "bookmark-backup"
)

// init registers the version subcommand with upgrade notices pointed at the
// project's GitHub releases.
func init() {
	RootCmd.AddCommand(extension.NewVersionCobraCmd(
		extension.WithUpgradeNotice(RepoOwner, RepoName),
	))
}
