package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/money"
	"invoicer/internal/store"
)

var version = "1.0.0"

// app holds the collaborators shared by every subcommand. They are opened
// lazily so that help and version output never touch the database.
type app struct {
	cfg       *config.Config
	store     store.Store
	factory   *invoice.Factory
	formatter *money.Formatter
}

func (a *app) open() error {
	if a.store != nil {
		return nil
	}

	formatter, err := a.cfg.Formatter()
	if err != nil {
		return fmt.Errorf("invalid currency configuration: %w", err)
	}

	s, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}

	a.store = s
	a.formatter = formatter
	a.factory = invoice.NewFactory(invoice.UUIDGenerator{},
		invoice.WithTaxRate(a.cfg.DefaultTaxRate),
		invoice.WithDueDays(a.cfg.DueDays),
	)
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		log := logger.WithComponent("cmd")
		log.Warn().Err(err).Msg("Failed to close store")
	}
	a.store = nil
}

// run opens the collaborators, runs fn and closes them again.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	if err := a.open(); err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context())
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "invoicer",
		Short: "Invoicer - create, edit and export invoices",
		Long: `Invoicer keeps invoices in a local SQLite database and renders them
to the terminal or to PDF.

Amounts are computed from the line items and the tax rate; they are never
stored. Currency formatting follows INVOICER_LOCALE and INVOICER_CURRENCY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newNewCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	return cmd
}

// Execute runs the CLI with cfg and exits with status 1 on failure.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", userError(err))
		stop()
		os.Exit(1)
	}
}

// userError turns known failures into messages a user can act on.
func userError(err error) error {
	var verrs invoice.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		lines := make([]string, 0, len(verrs))
		for _, v := range verrs {
			lines = append(lines, fmt.Sprintf("  %s %s", v.Field, v.Message))
		}
		return fmt.Errorf("the invoice is not complete:\n%s", strings.Join(lines, "\n"))
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("invoice not found. Run 'invoicer list' to see stored invoices")
	case errors.Is(err, invoice.ErrLastItem):
		return fmt.Errorf("an invoice must keep at least one line item")
	case errors.Is(err, invoice.ErrItemNotFound):
		return fmt.Errorf("no such line item. Run 'invoicer show <id> --json' to see item ids: %w", err)
	case errors.Is(err, invoice.ErrUnknownField):
		return fmt.Errorf("%w. Known fields: %s", err, strings.Join(fieldNames(), ", "))
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("canceled")
	default:
		return err
	}
}

func fieldNames() []string {
	return []string{
		string(invoice.FieldInvoiceNumber), string(invoice.FieldSubject),
		string(invoice.FieldDate), string(invoice.FieldDueDate),
		string(invoice.FieldCompanyName), string(invoice.FieldCompanyAddress),
		string(invoice.FieldClientName), string(invoice.FieldClientAddress),
		string(invoice.FieldNotes), string(invoice.FieldTaxRate),
	}
}
