package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/worthyten/internal/pricing"
	"github.com/donaldgifford/worthyten/internal/store"
)

const catalogTimeout = 2 * time.Minute

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load pricing tables and lenses from a YAML or JSON document",
	Long: "Validates the document against the catalog schema and upserts every\n" +
		"pricing table and lens it contains. Nothing is written when validation fails.",
	Example: `  worthyten import catalog.yaml
  worthyten import --config prod.yaml catalog.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the stored catalog as YAML",
	Example: `  worthyten export > catalog.yaml`,
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	doc, err := pricing.ParseFile(args[0])
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	sum, err := pricing.NewImporter(st, pricing.WithLogger(log)).Import(ctx, doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pricing tables and %d lenses.\n", sum.PricingTables, sum.Lenses)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	doc, err := pricing.NewImporter(st, pricing.WithLogger(log)).Export(ctx)
	if err != nil {
		return err
	}
	return doc.WriteYAML(cmd.OutOrStdout())
}
