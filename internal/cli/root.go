// Package cli defines the booklending command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/entrypoint"
)

// NewRootCommand builds the command tree. Running without a subcommand serves HTTP.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "booklending",
		Short:         "Inter-library book lending service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}

	root.AddCommand(
		newServeCommand(version),
		newSeedCommand(),
		newOverdueReportCommand(),
	)
	return root
}

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}
}
