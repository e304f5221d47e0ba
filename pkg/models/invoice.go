package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used for Date and DueDate.
const DateLayout = "2006-01-02"

type LineItem struct {
	ID          string          `json:"id"`          // Opaque list identity, stable for the item's lifetime
	Description string          `json:"description"` // May be empty while editing
	Quantity    int             `json:"quantity"`    // Always >= 1
	UnitPrice   decimal.Decimal `json:"unit_price"`  // Always >= 0
}

// Invoice is an immutable snapshot of an invoice. Edits produce a new
// snapshot; see invoice.Apply.
type Invoice struct {
	// Identity
	ID            string `json:"id"`             // Assigned by the store, immutable afterwards
	InvoiceNumber string `json:"invoice_number"` // Display number, not guaranteed unique

	// Header
	Subject string `json:"subject"`
	Date    string `json:"date"`     // YYYY-MM-DD
	DueDate string `json:"due_date"` // YYYY-MM-DD

	// Parties
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	ClientName     string `json:"client_name"`
	ClientAddress  string `json:"client_address"`

	// Billing
	Items   []LineItem      `json:"items"`    // Display order, never empty
	TaxRate decimal.Decimal `json:"tax_rate"` // Percentage in [0, 100]
	Notes   string          `json:"notes,omitempty"`

	// Set by the store only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy of the snapshot that shares no mutable state with inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]LineItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// ItemIndex returns the position of the item with the given id, or -1.
func (inv Invoice) ItemIndex(id string) int {
	for i, item := range inv.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
