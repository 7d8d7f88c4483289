package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/worthyten/internal/api/client"
)

func ordersCmd() *cobra.Command {
	ordersRoot := &cobra.Command{
		Use:   "orders",
		Short: "Browse submitted orders",
	}

	ordersRoot.AddCommand(
		ordersListCmd(),
		ordersGetCmd(),
	)

	return ordersRoot
}

func ordersListCmd() *cobra.Command {
	var (
		f     apiclient.OrderFilter
		since time.Duration
		asCSV bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Example: `  wtn orders list
  wtn orders list --category phone --since 24h
  wtn orders list --min-price 10000 --order-by final_price --limit 20
  wtn orders list --since 720h --limit 500 --csv > orders.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if since > 0 {
				f.Since = time.Now().Add(-since)
			}
			out, err := newClient().ListOrders(cmd.Context(), f)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			if asCSV {
				return printOrderCSV(cmd.OutOrStdout(), out.Orders)
			}
			if len(out.Orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders found.")
				return nil
			}
			if err := printOrderTable(cmd.OutOrStdout(), out.Orders); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d orders.\n", len(out.Orders), out.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&f.Brand, "brand", "", "filter by brand")
	cmd.Flags().DurationVar(&since, "since", 0, "only orders newer than this (e.g. 24h)")
	cmd.Flags().Int64Var(&f.MinPrice, "min-price", 0, "minimum final price")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "page size (server default 50)")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "page offset")
	cmd.Flags().StringVar(&f.OrderBy, "order-by", "", "created_at or final_price")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write the page as CSV")

	return cmd
}

func ordersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newClient().GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), o)
			}
			return printOrderDetail(cmd.OutOrStdout(), o)
		},
	}
}

func stateCmd() *cobra.Command {
	stateRoot := &cobra.Command{
		Use:   "state",
		Short: "Show catalog and order counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newClient().SystemState(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printState(cmd.OutOrStdout(), s)
		},
	}

	stateRoot.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Republish the state gauges now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newClient().RefreshState(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "State refreshed.")
			return nil
		},
	})

	return stateRoot
}
