package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"revenda-service/internal/app"
	"revenda-service/internal/domain/settlement"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsListCmd.Flags().String("status", string(settlement.RunFailed), "Run status: succeeded, rejected or failed")
	runsListCmd.Flags().Int("limit", 50, "Maximum number of runs")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the settlement journal",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settlement runs, failed ones by default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		return withComponents(cmd.Context(), func(ctx context.Context, c *app.Components) error {
			runs, err := c.Coordinator.Runs(ctx, settlement.RunListFilters{
				Status: settlement.RunStatus(status),
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs)
		})
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show one settlement run with its request and step report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withComponents(cmd.Context(), func(ctx context.Context, c *app.Components) error {
			run, err := c.Coordinator.Run(ctx, args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		})
	},
}

func printRuns(out io.Writer, runs []settlement.Run) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tKIND\tSUBJECT\tSTATUS\tFAILED STEP\tCOMPLETED\tSTARTED")
	for _, r := range runs {
		failed := "-"
		if r.FailedStep != nil {
			failed = fmt.Sprintf("%d %s", *r.FailedStep, r.FailedStepName)
		}
		completed := strings.Join(r.CompletedSteps, ",")
		if completed == "" {
			completed = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.Kind, r.SubjectID, r.Status, failed, completed, r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
