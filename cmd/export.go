package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"invoicer/internal/logger"
	"invoicer/internal/render"
)

func newExportCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a stored invoice as PDF",
		Example: `  # Writes INV-2025-042.pdf
  invoicer export 3f6c...

  invoicer export 3f6c... -o march.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				log := logger.WithInvoice("export", args[0])

				inv, err := a.store.Get(ctx, args[0])
				if err != nil {
					return err
				}

				data, err := render.PDF(ctx, render.NewPDFView(inv, a.formatter))
				if err != nil {
					return err
				}

				path := outputPath
				if path == "" {
					path = pdfFileName(inv.InvoiceNumber, inv.ID)
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					log.Error().Err(err).Str("output", path).Msg("Failed to write PDF")
					return fmt.Errorf("failed to write %s: %w", path, err)
				}

				log.Info().Str("output", path).Int("bytes", len(data)).Msg("Invoice exported")
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <invoice number>.pdf)")
	return cmd
}

// pdfFileName derives a file name from the invoice number, falling back to
// the id when the number has nothing usable.
func pdfFileName(number, id string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ' || r == '/' || r == '\\':
			return '_'
		}
		return -1
	}, strings.TrimSpace(number))
	if strings.Trim(name, "._") == "" {
		name = id
	}
	return name + ".pdf"
}
