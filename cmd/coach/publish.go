package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fincoach/internal/amqp"
	"fincoach/internal/config"
)

func publishCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Queue an insight generation trigger for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Get()

			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.PublishGenerateInsights(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued insight generation for %s\n", userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
