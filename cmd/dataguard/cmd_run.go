package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once: fetch, validate, store and report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			cfg, err := loadConfig(root.envFiles)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			runner, err := a.runner()
			if err != nil {
				return err
			}
			res, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, res)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}
