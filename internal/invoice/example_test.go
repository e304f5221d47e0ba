package invoice_test

import (
	"errors"
	"fmt"
	"time"

	"invoicer/internal/invoice"
)

type fixedIDs struct{ n int }

func (f *fixedIDs) NewID() string {
	f.n++
	return fmt.Sprintf("line-%d", f.n)
}

// Example walks a draft through a few edits and prints the derived totals.
func Example() {
	factory := invoice.NewFactory(&fixedIDs{},
		invoice.WithClock(func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }),
		invoice.WithRandom(func(int) int { return 42 }),
	)
	editor := factory.Editor()

	inv, err := editor.ApplyAll(factory.NewDraft(),
		invoice.UpdateItem{ID: "line-1", Field: invoice.ItemDescription, Value: "Design"},
		invoice.UpdateItem{ID: "line-1", Field: invoice.ItemQuantity, Value: "2"},
		invoice.UpdateItem{ID: "line-1", Field: invoice.ItemUnitPrice, Value: "100"},
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(inv.InvoiceNumber, inv.Date, inv.DueDate)
	fmt.Println("subtotal:", invoice.Subtotal(inv))
	fmt.Println("tax:", invoice.TaxAmount(inv))
	fmt.Println("total:", invoice.Total(inv))
	// Output:
	// INV-2025-042 2025-01-02 2025-02-01
	// subtotal: 200
	// tax: 38
	// total: 238
}

// ExampleNormalizeQuantity shows how malformed quantities are coerced.
func ExampleNormalizeQuantity() {
	fmt.Println(invoice.NormalizeQuantity("-5"))
	fmt.Println(invoice.NormalizeQuantity("abc"))
	fmt.Println(invoice.NormalizeQuantity("7"))
	// Output:
	// 1
	// 1
	// 7
}

// ExampleNormalizeTaxRate shows the [0, 100] clamp.
func ExampleNormalizeTaxRate() {
	fmt.Println(invoice.NormalizeTaxRate("150"))
	fmt.Println(invoice.NormalizeTaxRate("-10"))
	fmt.Println(invoice.NormalizeTaxRate("19.5"))
	// Output:
	// 100
	// 0
	// 19.5
}

// ExampleEditor_Apply demonstrates that the last line item cannot be removed.
func ExampleEditor_Apply() {
	factory := invoice.NewFactory(&fixedIDs{})
	draft := factory.NewDraft()

	next, err := factory.Editor().Apply(draft, invoice.RemoveItem{ID: "line-1"})
	fmt.Println(errors.Is(err, invoice.ErrLastItem), len(next.Items))
	// Output:
	// true 1
}
