// Package invoice holds the invoice computation and data-consistency model.
//
// Every function in this package is a pure transformation of an immutable
// models.Invoice snapshot. User input enters the model only through the
// Normalize* functions and the Apply reducer, so a snapshot is valid at
// every point of editing, not only at submission.
//
// Model Invariants:
//   - Every line item has Quantity >= 1 and UnitPrice >= 0
//   - An invoice always has at least one line item
//   - TaxRate is a percentage in [0, 100]
//
// Calculator:
//   - Subtotal, TaxAmount and Total are derived in that order
//   - Amounts use decimal arithmetic, so totals are exact
//   - A degenerate snapshot with no items yields zero, never an error
package invoice

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"invoicer/pkg/models"
)

// Defaults applied to a new draft.
const (
	// DefaultDueDays is the number of days between the invoice date and its due date.
	DefaultDueDays = 30

	// invoiceNumberSpace bounds the random suffix of generated invoice numbers (000-999).
	invoiceNumberSpace = 1000
)

// DefaultTaxRate is the tax percentage a new draft starts with.
var DefaultTaxRate = decimal.NewFromInt(19)

// IDGenerator produces opaque unique identifiers for invoices and line items.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUID strings.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Factory builds default line items and drafts.
type Factory struct {
	ids     IDGenerator
	now     func() time.Time
	intn    func(n int) int
	taxRate decimal.Decimal
	dueDays int
}

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// WithClock sets the time source used for the default dates and invoice number year.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) { f.now = now }
}

// WithRandom sets the source of the invoice number suffix. intn must return a value in [0, n).
func WithRandom(intn func(n int) int) FactoryOption {
	return func(f *Factory) { f.intn = intn }
}

// WithTaxRate sets the draft tax rate. The value is clamped to [0, 100].
func WithTaxRate(rate decimal.Decimal) FactoryOption {
	return func(f *Factory) { f.taxRate = clampTaxRate(rate) }
}

// WithDueDays sets the distance between draft date and due date. Negative values are ignored.
func WithDueDays(days int) FactoryOption {
	return func(f *Factory) {
		if days >= 0 {
			f.dueDays = days
		}
	}
}

// NewFactory creates a Factory. A nil ids falls back to UUIDGenerator.
func NewFactory(ids IDGenerator, opts ...FactoryOption) *Factory {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	f := &Factory{
		ids:     ids,
		now:     time.Now,
		intn:    rand.Intn,
		taxRate: DefaultTaxRate,
		dueDays: DefaultDueDays,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewItem returns a blank line item with a fresh id.
func (f *Factory) NewItem() models.LineItem {
	return CreateDefaultItem(f.ids)
}

// NewDraft returns a new invoice snapshot populated with generated defaults:
// a random invoice number for the current year, today's date, a due date
// DueDays later and a single blank line item.
func (f *Factory) NewDraft() models.Invoice {
	now := f.now()
	return models.Invoice{
		InvoiceNumber: DefaultInvoiceNumber(now.Year(), f.intn(invoiceNumberSpace)),
		Date:          now.Format(models.DateLayout),
		DueDate:       now.AddDate(0, 0, f.dueDays).Format(models.DateLayout),
		Items:         []models.LineItem{f.NewItem()},
		TaxRate:       f.taxRate,
	}
}

// DefaultInvoiceNumber formats the generated display number INV-<year>-<nnn>.
func DefaultInvoiceNumber(year, n int) string {
	n %= invoiceNumberSpace
	if n < 0 {
		n += invoiceNumberSpace
	}
	return fmt.Sprintf("INV-%d-%03d", year, n)
}

// CreateDefaultItem returns a new line item with a fresh id, no description,
// quantity 1 and price 0.
func CreateDefaultItem(ids IDGenerator) models.LineItem {
	return models.LineItem{
		ID:        ids.NewID(),
		Quantity:  1,
		UnitPrice: decimal.Zero,
	}
}
