package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"invoicer/internal/draft"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		fromPath string
		sets     []string
		taxRate  string
		items    []string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create and store a new invoice",
		Long: `Create a new invoice from the defaults, an optional YAML draft file and
command line edits, in that order. The invoice is checked for completeness
before it is stored.

Defaults: a generated invoice number (INV-<year>-<nnn>), today's date, a due
date INVOICER_DUE_DAYS later, the INVOICER_DEFAULT_TAX_RATE and one blank
line item.`,
		Example: `  # Everything on the command line
  invoicer new --set subject="Website" --set company_name="Atlas SARL" \
    --set company_address="Alger" --set client_name="Client SPA" \
    --set client_address="Oran" --item "Design;2;1000" --item "Hosting;1;234.50"

  # From a draft file, overriding the tax rate
  invoicer new --from draft.yaml --tax-rate 9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				log := logger.WithComponent("new")

				d := &draft.Draft{}
				if fromPath != "" {
					loaded, err := draft.Load(fromPath)
					if err != nil {
						return err
					}
					d = loaded
				}
				for _, raw := range items {
					d.Items = append(d.Items, parseItem(raw))
				}

				ed := a.factory.Editor()
				inv, err := d.Apply(ed, a.factory.NewDraft())
				if err != nil {
					return err
				}

				edits, err := parseSets(sets)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("tax-rate") {
					edits = append(edits, invoice.SetTaxRate{Raw: taxRate})
				}
				if inv, err = ed.ApplyAll(inv, edits...); err != nil {
					return err
				}

				if err := invoice.Validate(inv); err != nil {
					log.Warn().Err(err).Msg("Invoice rejected at submission")
					return err
				}

				created, err := a.store.Create(ctx, inv)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created invoice %s (%s)\n", created.ID, created.InvoiceNumber)
				if !quiet {
					a.preview(out, created)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromPath, "from", "", "YAML draft file to start from")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, as field=value (repeatable)")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "Tax rate in percent, clamped to 0..100")
	cmd.Flags().StringArrayVar(&items, "item", nil, `Line item as "description;quantity;price" (repeatable)`)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the invoice preview")

	return cmd
}

func (a *app) preview(w io.Writer, inv models.Invoice) {
	fmt.Fprintln(w)
	fmt.Fprint(w, render.Preview(render.NewView(inv, a.formatter)))
}
