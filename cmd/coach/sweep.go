package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"fincoach/internal/worker"
)

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Generate insights for every user once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := worker.NewInsightWorker(a.users, a.coach, a.cfg.SweepConcurrency)
			result, err := w.Sweep(cmd.Context())
			if result != nil {
				printSweep(cmd.OutOrStdout(), result)
			}
			if err != nil {
				return err
			}
			if len(result.Failures) > 0 {
				return fmt.Errorf("%d of %d users failed", len(result.Failures), result.Users)
			}
			return nil
		},
	}
}

func printSweep(w io.Writer, r *worker.SweepResult) {
	fmt.Fprintf(w, "users: %d, insights created: %d, skipped: %d, failed: %d, took %s\n",
		r.Users, r.InsightsCreated, r.Skipped, len(r.Failures), r.Duration.Round(time.Millisecond))
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %s: %v\n", f.UserID, f.Err)
	}
}
