package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dataguard/pkg/httpserver"
	"github.com/dmitrymomot/dataguard/pkg/schedule"
	"github.com/dmitrymomot/dataguard/svc/api"
	"github.com/dmitrymomot/dataguard/svc/pipeline"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var noSchedule bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the pipeline on its schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root.envFiles)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			router := api.New(
				api.WithLogger(log),
				api.WithStats(a.store),
				api.WithSnapshots(a.snapshots),
				api.WithReadinessChecks(a.checks...),
				api.WithMissingThreshold(cfg.Pipeline.MissingThreshold),
				api.WithTrustedIPHeaders(cfg.HTTP.TrustedIPHeaders...),
			).Router()
			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

			var (
				runner *pipeline.Runner
				sched  schedule.Schedule
			)
			if !noSchedule {
				if runner, err = a.runner(); err != nil {
					return err
				}
				if sched, err = schedule.Parse(cfg.Pipeline.Schedule); err != nil {
					return err
				}
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(ctx, router) })
			if runner != nil {
				g.Go(func() error {
					err := schedule.Loop(ctx, sched, func(ctx context.Context) error {
						_, err := runner.Run(ctx)
						return err
					}, schedule.WithImmediate(), schedule.WithLogger(log))
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				})
			}

			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false, "serve the API without periodic pipeline runs")
	return cmd
}
