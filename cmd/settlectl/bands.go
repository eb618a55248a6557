package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"revenda-service/internal/app"
	"revenda-service/internal/domain/pricing"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bandsCmd)
	bandsCmd.AddCommand(bandsGapsCmd)
	bandsCmd.AddCommand(bandsQuoteCmd)
}

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Check reseller pricing bands",
}

var bandsGapsCmd = &cobra.Command{
	Use:   "gaps PANEL",
	Short: "List quantity ranges no active band prices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withComponents(cmd.Context(), func(ctx context.Context, c *app.Components) error {
			gaps, err := c.Resolver.CoverageGaps(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(gaps) == 0 {
				fmt.Fprintf(out, "%s: every quantity from the minimum up is priced\n", args[0])
				return nil
			}
			for _, g := range gaps {
				if g.To == nil {
					fmt.Fprintf(out, "%s: no band from %d upwards\n", args[0], g.From)
					continue
				}
				fmt.Fprintf(out, "%s: no band for %d-%d\n", args[0], g.From, *g.To)
			}
			return nil
		})
	},
}

var bandsQuoteCmd = &cobra.Command{
	Use:   "quote PANEL QUANTITY",
	Short: "Price a reseller purchase without settling it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}

		return withComponents(cmd.Context(), func(ctx context.Context, c *app.Components) error {
			quote, err := c.Resolver.Quote(ctx, args[0], quantity)
			if err != nil {
				return err
			}
			printQuote(cmd.OutOrStdout(), quote)
			return nil
		})
	},
}

// printQuote prints prices at their stored precision.
func printQuote(w io.Writer, q *pricing.Quote) {
	fmt.Fprintf(w, "%s: %d credits at %s = %s\n", q.Panel, q.Quantity, q.PricePerCredit.String(), q.Total.String())
}
