package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "dataguard",
		Short:         "Validate public API data before it reaches the database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading the environment")

	cmd.AddCommand(
		newRunCmd(opts),
		newServeCmd(opts),
		newValidateCmd(),
		newStatsCmd(opts),
	)
	return cmd
}
