package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func questionnaireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questionnaire <category>",
		Short: "Show the questions and options for a category",
		Example: `  wtn questionnaire Mobile
  wtn questionnaire dslr --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := newClient().GetQuestionnaire(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), q)
			}
			return printQuestionnaire(cmd.OutOrStdout(), q)
		},
	}
}

func pricingCmd() *cobra.Command {
	pricingRoot := &cobra.Command{
		Use:   "pricing",
		Short: "Manage per-model pricing tables",
		Long: "Pricing tables hold the fixed deductions and bonuses applied by the\n" +
			"assessment, issues and accessories stages for one brand and model.",
	}

	pricingRoot.AddCommand(
		pricingListCmd(),
		pricingGetCmd(),
		pricingImportCmd(),
	)

	return pricingRoot
}

func pricingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pricing tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := newClient().ListPricingTables(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), tables)
			}
			if len(tables) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pricing tables found.")
				return nil
			}
			return printPricingTables(cmd.OutOrStdout(), tables)
		},
	}
}

func pricingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <brand> <model>",
		Short:   "Show one pricing table",
		Example: `  wtn pricing get Apple "iPhone 13"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newClient().GetPricingTable(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), t)
			}
			return printPricingTable(cmd.OutOrStdout(), t)
		},
	}
}

func pricingImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Upload a YAML or JSON catalog document",
		Long: "Uploads pricing tables and lenses. The server validates the whole\n" +
			"document before writing anything.",
		Example: `  wtn pricing import catalog.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening catalog: %w", err)
			}
			defer f.Close()

			sum, err := newClient().ImportPricing(cmd.Context(), f)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), sum)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pricing tables and %d lenses.\n",
				sum.PricingTables, sum.Lenses)
			return nil
		},
	}
}

func lensesCmd() *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:   "lenses",
		Short: "List the lens catalog",
		Example: `  wtn lenses
  wtn lenses --brand Sony`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lenses, err := newClient().ListLenses(cmd.Context(), brand)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), lenses)
			}
			if len(lenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lenses found.")
				return nil
			}
			return printLensTable(cmd.OutOrStdout(), lenses)
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "only lenses of this brand")

	return cmd
}
