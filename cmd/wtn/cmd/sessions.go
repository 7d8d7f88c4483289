package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/worthyten/internal/api/client"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func sessionCmd() *cobra.Command {
	sessionRoot := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Run a device through the valuation stages",
		Long: "Start a valuation from a quote, then submit each stage in order:\n" +
			"assess, lenses (cameras with an extra lens only), physical, issues,\n" +
			"accessories, verify, finalize. Submit the completed valuation with order.",
	}

	sessionRoot.AddCommand(
		sessionStartCmd(),
		sessionShowCmd(),
		sessionResetCmd(),
		sessionAssessCmd(),
		sessionLensesCmd(),
		sessionPhysicalCmd(),
		sessionSelectionCmd("issues", "Report functional issues",
			"display_cracked battery_weak", (*apiclient.Client).ApplyIssues),
		sessionSelectionCmd("accessories", "Report included accessories",
			"charger original_box bill", (*apiclient.Client).ApplyAccessories),
		sessionVerifyCmd(),
		sessionFinalizeCmd(),
		sessionOrderCmd(),
	)

	return sessionRoot
}

func sessionStartCmd() *cobra.Command {
	var (
		q            apiclient.Quote
		variantLabel string
		variantMult  float64
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a valuation from a quote",
		Example: `  wtn session start --category Mobile --brand Apple --model "iPhone 13" --price 32000
  wtn session start --brand Apple --model "iPhone 13" --price 32000 \
    --variant-label "256 GB" --variant-multiplier 1.25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if q.Brand == "" || q.Model == "" || q.BasePrice <= 0 {
				return fmt.Errorf("--brand, --model and a positive --price are required")
			}
			if variantLabel != "" || variantMult != 0 {
				q.Variant = &domain.Variant{Label: variantLabel, Multiplier: variantMult}
			}
			s, err := newClient().CreateSession(cmd.Context(), q)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printSession(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&q.Category, "category", "", "category or synonym (Mobile, laptop, dslr, ...)")
	cmd.Flags().StringVar(&q.Brand, "brand", "", "device brand")
	cmd.Flags().StringVar(&q.Model, "model", "", "device model")
	cmd.Flags().Int64Var(&q.BasePrice, "price", 0, "quoted base price in rupees")
	cmd.Flags().StringVar(&variantLabel, "variant-label", "", "storage or RAM variant label")
	cmd.Flags().Float64Var(&variantMult, "variant-multiplier", 0, "variant price multiplier")

	return cmd
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <session-id>",
		Short:   "Show a valuation and the stage to continue at",
		Example: `  wtn session show 3f0c...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newClient().GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printSession(cmd.OutOrStdout(), s)
		},
	}
}

func sessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Discard a valuation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().ResetSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s reset.\n", args[0])
			return nil
		},
	}
}

func sessionAssessCmd() *cobra.Command {
	var (
		answerArgs []string
		draft      bool
	)

	cmd := &cobra.Command{
		Use:   "assess <session-id>",
		Short: "Answer the assessment questions",
		Long: "Answer every yes/no question for the category. Use --draft to save\n" +
			"partial answers without pricing the stage.",
		Example: `  wtn session assess 3f0c... --answer powerOn=yes --answer screenIntact=no`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parsePairs(answerArgs)
			if err != nil {
				return fmt.Errorf("parsing answers: %w", err)
			}
			answers := make(map[string]domain.Answer, len(pairs))
			for k, v := range pairs {
				a := domain.Answer(strings.ToLower(v))
				if !a.Valid() {
					return fmt.Errorf("answer for %s must be yes or no (got %q)", k, v)
				}
				answers[k] = a
			}
			res, err := newClient().Assess(cmd.Context(), args[0], answers, !draft)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().StringArrayVar(&answerArgs, "answer", nil, "answer as question=yes|no")
	cmd.Flags().BoolVar(&draft, "draft", false, "save without submitting")

	return cmd
}

func sessionLensesCmd() *cobra.Command {
	var selected []string

	cmd := &cobra.Command{
		Use:   "lenses <session-id>",
		Short: "List compatible lenses or attach lenses to a camera",
		Example: `  wtn session lenses 3f0c...
  wtn session lenses 3f0c... --select sony-fe-24-70 --select sony-fe-50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			if !cmd.Flags().Changed("select") {
				out, err := c.ListCompatibleLenses(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), out)
				}
				if len(out.Lenses) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No compatible lenses found.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mount: %s\n", out.Mount)
				return printLensTable(cmd.OutOrStdout(), out.Lenses)
			}
			res, err := c.SelectLenses(cmd.Context(), args[0], selected)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().StringArrayVar(&selected, "select", nil, "lens id to attach (repeatable)")

	return cmd
}

func sessionPhysicalCmd() *cobra.Command {
	var (
		selectArgs []string
		draft      bool
	)

	cmd := &cobra.Command{
		Use:     "physical <session-id>",
		Short:   "Choose one condition per physical group",
		Example: `  wtn session physical 3f0c... --select screen=screen_flawless --select body=body_minor`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selections, err := parsePairs(selectArgs)
			if err != nil {
				return fmt.Errorf("parsing selections: %w", err)
			}
			res, err := newClient().ApplyPhysical(cmd.Context(), args[0], selections, !draft)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().StringArrayVar(&selectArgs, "select", nil, "selection as group=option")
	cmd.Flags().BoolVar(&draft, "draft", false, "save without submitting")

	return cmd
}

type selectionFunc func(*apiclient.Client, context.Context, string, []string, bool) (*apiclient.StageResult, error)

func sessionSelectionCmd(use, short, example string, apply selectionFunc) *cobra.Command {
	var draft bool

	cmd := &cobra.Command{
		Use:   use + " <session-id> [ids...]",
		Short: short,
		Long: short + ". Pass the ids that apply, or \"none\" when nothing does.\n" +
			"Use --draft to save without submitting.",
		Example: fmt.Sprintf("  wtn session %s 3f0c... %s\n  wtn session %s 3f0c... none", use, example, use),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apply(newClient(), cmd.Context(), args[0], args[1:], !draft)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "save without submitting")

	return cmd
}

func sessionVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <session-id>",
		Short: "Mark the seller as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().Verify(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s verified.\n", args[0])
			return nil
		},
	}
}

func sessionFinalizeCmd() *cobra.Command {
	var age string

	cmd := &cobra.Command{
		Use:     "finalize <session-id>",
		Short:   "Submit the device age and reveal the final offer",
		Example: `  wtn session finalize 3f0c... --age less-than-1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if age == "" {
				return fmt.Errorf("--age is required")
			}
			res, err := newClient().Finalize(cmd.Context(), args[0], age)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&age, "age", "", "device age bucket id (see `wtn questionnaire`)")

	return cmd
}

func sessionOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <session-id>",
		Short: "Submit a completed valuation as an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newClient().SubmitOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), o)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s created: %s\n", o.ID, rupees(o.FinalPrice))
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, res *apiclient.StageResult) error {
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	return printStageResult(cmd.OutOrStdout(), res)
}

// parsePairs splits key=value arguments.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("duplicate key %q", k)
		}
		out[k] = v
	}
	return out, nil
}
