package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fincoach/internal/models"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "List and acknowledge stored insights",
	}
	cmd.AddCommand(insightsListCmd())
	cmd.AddCommand(insightsReadCmd())
	return cmd
}

func insightsListCmd() *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's newest insights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.InsightListLimit
			}
			insights, err := a.coach.ListInsights(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			return printInsights(cmd.OutOrStdout(), insights)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum insights to show (default INSIGHT_LIST_LIMIT)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func insightsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <insight-id>",
		Short: "Mark an insight as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.coach.MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s as read\n", args[0])
			return nil
		},
	}
}

func printInsights(w io.Writer, insights []models.Insight) error {
	if len(insights) == 0 {
		_, err := fmt.Fprintln(w, "no insights")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTYPE\tREAD\tTITLE\tMESSAGE")
	for _, in := range insights {
		read := " "
		if in.IsRead {
			read = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			in.ID, in.CreatedAt.Format("2006-01-02 15:04"), in.Type, read, in.Title, in.Message)
	}
	return tw.Flush()
}
