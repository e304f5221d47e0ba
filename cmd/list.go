package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
)

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var listCellStyle = lipgloss.NewStyle().Padding(0, 1)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored invoices, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				invoices, err := a.store.List(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(invoices) == 0 {
					fmt.Fprintln(out, "No invoices yet. Create one with 'invoicer new'.")
					return nil
				}

				t := table.New().
					Border(lipgloss.NormalBorder()).
					StyleFunc(func(row, col int) lipgloss.Style {
						if row == table.HeaderRow {
							return listHeaderStyle
						}
						if col == 5 {
							return listCellStyle.Align(lipgloss.Right)
						}
						return listCellStyle
					}).
					Headers("ID", "Number", "Date", "Client", "Subject", "Total")
				for _, inv := range invoices {
					t.Row(inv.ID, inv.InvoiceNumber, inv.Date, inv.ClientName, inv.Subject,
						a.formatter.Format(invoice.Total(inv)))
				}
				fmt.Fprintln(out, t.Render())
				return nil
			})
		},
	}
}
