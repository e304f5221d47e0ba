package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"invoicer/pkg/models"
)

func item(qty int, price string) models.LineItem {
	return models.LineItem{Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func invoiceWith(rate string, items ...models.LineItem) models.Invoice {
	return models.Invoice{TaxRate: decimal.RequireFromString(rate), Items: items}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "got %s, want %s", got, want)
}

func TestCalculator_SingleItemWithTax(t *testing.T) {
	inv := invoiceWith("19", item(2, "100"))

	assertDecimal(t, "200", Subtotal(inv))
	assertDecimal(t, "38", TaxAmount(inv))
	assertDecimal(t, "238", Total(inv))
}

func TestCalculator_TwoItemsNoTax(t *testing.T) {
	inv := invoiceWith("0", item(1, "50"), item(3, "10"))

	assertDecimal(t, "80", Subtotal(inv))
	assertDecimal(t, "0", TaxAmount(inv))
	assertDecimal(t, "80", Total(inv))
}

func TestCalculator_NoItemsYieldsZero(t *testing.T) {
	inv := invoiceWith("19")

	assertDecimal(t, "0", Subtotal(inv))
	assertDecimal(t, "0", TaxAmount(inv))
	assertDecimal(t, "0", Total(inv))
	assert.True(t, Compute(inv).Total.IsZero())
}

func TestCalculator_SubtotalIsSumOfLineAmounts(t *testing.T) {
	inv := invoiceWith("7.5", item(3, "12.345"), item(1, "0.01"), item(10, "99.99"))

	want := decimal.Zero
	for _, it := range inv.Items {
		want = want.Add(decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice))
	}
	assert.True(t, Subtotal(inv).Equal(want))
	assertDecimal(t, "1036.945", Subtotal(inv))
}

func TestCalculator_TotalIsSubtotalPlusTax(t *testing.T) {
	inv := invoiceWith("19.6", item(3, "33.33"), item(7, "0.7"))

	assert.True(t, Total(inv).Equal(Subtotal(inv).Add(TaxAmount(inv))))
}

func TestCalculator_TaxIsLinearInRate(t *testing.T) {
	base := invoiceWith("9.5", item(4, "17.25"), item(2, "3.10"))
	doubled := base.Clone()
	doubled.TaxRate = base.TaxRate.Mul(decimal.NewFromInt(2))

	assert.True(t, TaxAmount(doubled).Equal(TaxAmount(base).Mul(decimal.NewFromInt(2))))
}

func TestCompute_MatchesIndividualFunctions(t *testing.T) {
	inv := invoiceWith("19", item(2, "100"), item(1, "0.5"))

	totals := Compute(inv)
	assert.True(t, totals.Subtotal.Equal(Subtotal(inv)))
	assert.True(t, totals.TaxAmount.Equal(TaxAmount(inv)))
	assert.True(t, totals.Total.Equal(Total(inv)))
}

func TestLineAmount(t *testing.T) {
	assertDecimal(t, "37.035", LineAmount(item(3, "12.345")))
}
