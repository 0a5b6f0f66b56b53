package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fincoach/internal/amqp"
	"fincoach/internal/logger"
	"fincoach/internal/worker"
)

func workerCmd() *cobra.Command {
	var noSweep bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume generation triggers and run the periodic sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()

			w := worker.NewInsightWorker(a.users, a.coach, a.cfg.SweepConcurrency)
			logger.Named("worker").Infow("worker started",
				"queue", a.cfg.AMQPQueue,
				"sweep_interval", a.cfg.SweepInterval.String(),
				"sweep", !noSweep,
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return client.ConsumeGenerateInsights(ctx, w.HandleGenerateMessage)
			})
			if !noSweep {
				g.Go(func() error {
					return w.Run(ctx, a.cfg.SweepInterval)
				})
			}

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "only consume triggers")
	return cmd
}
