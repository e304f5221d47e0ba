package invoice

import (
	"github.com/shopspring/decimal"
	"invoicer/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the derived amounts of one snapshot.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// LineAmount returns quantity × unit price for a single item.
func LineAmount(item models.LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums the line amounts of every item. An invoice without items has a zero subtotal.
func Subtotal(inv models.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.Items {
		sum = sum.Add(LineAmount(item))
	}
	return sum
}

// TaxAmount applies the invoice tax rate (a percentage) to the subtotal.
func TaxAmount(inv models.Invoice) decimal.Decimal {
	return taxOn(Subtotal(inv), inv.TaxRate)
}

// Total is the subtotal plus the tax amount.
func Total(inv models.Invoice) decimal.Decimal {
	subtotal := Subtotal(inv)
	return subtotal.Add(taxOn(subtotal, inv.TaxRate))
}

// Compute derives subtotal, tax and total in dependency order, walking the items once.
func Compute(inv models.Invoice) Totals {
	subtotal := Subtotal(inv)
	tax := taxOn(subtotal, inv.TaxRate)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

func taxOn(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Div(hundred)
}
