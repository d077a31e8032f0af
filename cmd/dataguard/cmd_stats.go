package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/dataguard/svc/store"
)

type statsReport struct {
	Tables map[string]int              `json:"tables"`
	Recent map[string][]map[string]any `json:"recent,omitempty"`
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var (
		output string
		recent int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print row counts and, optionally, the latest rows of each table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			cfg, err := loadConfig(root.envFiles)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			defer a.close()

			report, err := collectStats(cmd, a.store, recent)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, report)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	cmd.Flags().IntVar(&recent, "recent", 0, "also print this many latest rows per table")
	return cmd
}

func collectStats(cmd *cobra.Command, s *store.Store, recent int) (statsReport, error) {
	tables, err := s.Stats(cmd.Context())
	if err != nil {
		return statsReport{}, err
	}
	report := statsReport{Tables: tables}
	if recent <= 0 {
		return report, nil
	}
	report.Recent = make(map[string][]map[string]any, len(store.Tables))
	for _, table := range store.Tables {
		rows, err := s.Recent(cmd.Context(), table, recent)
		if err != nil {
			return statsReport{}, err
		}
		report.Recent[table] = rows
	}
	return report, nil
}
