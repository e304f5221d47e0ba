package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

var errNothingToChange = errors.New("nothing to change: pass at least one edit flag")

func newEditCmd(a *app) *cobra.Command {
	var (
		sets        []string
		taxRate     string
		addItems    []string
		updateItems []string
		removeItems []string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a stored invoice",
		Long: `Apply edits to a stored invoice. Edits run in this order: field changes,
tax rate, added items, item updates, item removals. If any edit is rejected
nothing is saved. The edited invoice is checked for completeness before it
is stored.`,
		Example: `  invoicer edit 3f6c... --set notes="Paid by transfer"
  invoicer edit 3f6c... --add-item "Support;3;80" --remove-item 9a1b...
  invoicer edit 3f6c... --update-item 9a1b...:quantity=4 --tax-rate 9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if len(sets)+len(addItems)+len(updateItems)+len(removeItems) == 0 && !flags.Changed("tax-rate") {
				return errNothingToChange
			}

			return a.run(cmd, func(ctx context.Context) error {
				log := logger.WithInvoice("edit", args[0])

				current, err := a.store.Get(ctx, args[0])
				if err != nil {
					return err
				}

				header, err := parseSets(sets)
				if err != nil {
					return err
				}
				if flags.Changed("tax-rate") {
					header = append(header, invoice.SetTaxRate{Raw: taxRate})
				}
				var itemOps []invoice.Edit
				for _, raw := range updateItems {
					u, err := parseItemUpdate(raw)
					if err != nil {
						return err
					}
					itemOps = append(itemOps, u)
				}
				for _, id := range removeItems {
					itemOps = append(itemOps, invoice.RemoveItem{ID: id})
				}

				next, err := applyEdits(a.factory.Editor(), current, header, addItems, itemOps)
				if err != nil {
					log.Warn().Err(err).Msg("Edit rejected")
					return err
				}

				if err := invoice.Validate(next); err != nil {
					log.Warn().Err(err).Msg("Invoice rejected at submission")
					return err
				}

				updated, err := a.store.Update(ctx, next)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Updated invoice %s (%s)\n", updated.ID, updated.InvoiceNumber)
				if !quiet {
					a.preview(out, updated)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, as field=value (repeatable)")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "Tax rate in percent, clamped to 0..100")
	cmd.Flags().StringArrayVar(&addItems, "add-item", nil, `Add a line item as "description;quantity;price" (repeatable)`)
	cmd.Flags().StringArrayVar(&updateItems, "update-item", nil, "Change an item, as id:field=value (repeatable)")
	cmd.Flags().StringArrayVar(&removeItems, "remove-item", nil, "Remove the item with this id (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the invoice preview")

	return cmd
}

// applyEdits applies header, then adds one item per addItems entry, then
// itemOps. Added items get their ids from the editor, so each is filled right
// after it is added. On error inv is returned unchanged.
func applyEdits(ed *invoice.Editor, inv models.Invoice, header []invoice.Edit, addItems []string, itemOps []invoice.Edit) (models.Invoice, error) {
	next, err := ed.ApplyAll(inv, header...)
	if err != nil {
		return inv, err
	}
	for _, raw := range addItems {
		if next, err = ed.Apply(next, invoice.AddItem{}); err != nil {
			return inv, err
		}
		id := next.Items[len(next.Items)-1].ID
		if next, err = ed.ApplyAll(next, parseItem(raw).Edits(id)...); err != nil {
			return inv, err
		}
	}
	if next, err = ed.ApplyAll(next, itemOps...); err != nil {
		return inv, err
	}
	return next, nil
}
