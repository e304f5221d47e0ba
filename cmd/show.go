package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

// ShowOutput is the JSON document printed by show --json.
type ShowOutput struct {
	Invoice models.Invoice `json:"invoice"`
	Totals  invoice.Totals `json:"totals"`

	// Formatted holds the totals as displayed, in the configured locale and currency.
	Formatted FormattedTotals `json:"formatted"`
}

// FormattedTotals are display strings for the invoice totals.
type FormattedTotals struct {
	Locale    string `json:"locale"`
	Currency  string `json:"currency"`
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"tax_amount"`
	Total     string `json:"total"`
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored invoice",
		Example: `  invoicer show 3f6c...
  invoicer show 3f6c... --json > invoice.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				inv, err := a.store.Get(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !asJSON {
					a.preview(out, inv)
					return nil
				}

				totals := invoice.Compute(inv)
				doc := ShowOutput{
					Invoice: inv,
					Totals:  totals,
					Formatted: FormattedTotals{
						Locale:    a.formatter.Locale(),
						Currency:  a.formatter.Currency(),
						Subtotal:  a.formatter.Format(totals.Subtotal),
						TaxAmount: a.formatter.Format(totals.TaxAmount),
						Total:     a.formatter.Format(totals.Total),
					},
				}
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal invoice: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the invoice and its totals as JSON")
	return cmd
}
