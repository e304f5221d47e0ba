package invoice

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invoicer/pkg/models"
)

// seqIDs hands out item-1, item-2, ...
type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("item-%d", s.n)
}

func newTestFactory() *Factory {
	return NewFactory(&seqIDs{},
		WithClock(func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }),
		WithRandom(func(int) int { return 7 }),
	)
}

func TestEditor_AddItemAppendsDefaultItem(t *testing.T) {
	f := newTestFactory()
	draft := f.NewDraft()

	next, err := f.Editor().Apply(draft, AddItem{})
	require.NoError(t, err)

	require.Len(t, next.Items, 2)
	assert.Equal(t, "item-2", next.Items[1].ID)
	assert.Equal(t, 1, next.Items[1].Quantity)
	assert.True(t, next.Items[1].UnitPrice.IsZero())
	assert.Len(t, draft.Items, 1, "original snapshot must not change")
}

func TestEditor_RemoveLastItemIsRejected(t *testing.T) {
	f := newTestFactory()
	draft := f.NewDraft()

	next, err := f.Editor().Apply(draft, RemoveItem{ID: "item-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLastItem)
	assert.Len(t, next.Items, 1)
	assert.Equal(t, draft, next)
}

func TestEditor_RemoveItemKeepsOrder(t *testing.T) {
	f := newTestFactory()
	ed := f.Editor()
	inv, err := ed.ApplyAll(f.NewDraft(), AddItem{}, AddItem{})
	require.NoError(t, err)

	next, err := ed.Apply(inv, RemoveItem{ID: "item-2"})
	require.NoError(t, err)

	require.Len(t, next.Items, 2)
	assert.Equal(t, "item-1", next.Items[0].ID)
	assert.Equal(t, "item-3", next.Items[1].ID)
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, itemIDs(inv), "original snapshot must not change")
}

func TestEditor_RemoveUnknownItem(t *testing.T) {
	f := newTestFactory()
	inv, err := f.Editor().Apply(f.NewDraft(), AddItem{})
	require.NoError(t, err)

	_, err = f.Editor().Apply(inv, RemoveItem{ID: "missing"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestEditor_UpdateItemNormalizesInput(t *testing.T) {
	f := newTestFactory()
	ed := f.Editor()
	draft := f.NewDraft()

	inv, err := ed.ApplyAll(draft,
		UpdateItem{ID: "item-1", Field: ItemDescription, Value: "Consulting"},
		UpdateItem{ID: "item-1", Field: ItemQuantity, Value: "-4"},
		UpdateItem{ID: "item-1", Field: ItemUnitPrice, Value: "-1"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Consulting", inv.Items[0].Description)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.True(t, inv.Items[0].UnitPrice.IsZero())

	inv, err = ed.ApplyAll(inv,
		UpdateItem{ID: "item-1", Field: ItemQuantity, Value: "3"},
		UpdateItem{ID: "item-1", Field: ItemUnitPrice, Value: "12.50"},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Items[0].Quantity)
	assert.True(t, inv.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "", draft.Items[0].Description, "original snapshot must not change")
}

func TestEditor_SetFieldAndTaxRate(t *testing.T) {
	f := newTestFactory()
	ed := f.Editor()

	inv, err := ed.ApplyAll(f.NewDraft(),
		SetField{Field: FieldSubject, Value: "Website redesign"},
		SetField{Field: FieldClientName, Value: "ACME"},
		SetField{Field: FieldTaxRate, Value: "150"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Website redesign", inv.Subject)
	assert.Equal(t, "ACME", inv.ClientName)
	assert.True(t, inv.TaxRate.Equal(decimal.NewFromInt(100)))

	inv, err = ed.Apply(inv, SetTaxRate{Raw: "-10"})
	require.NoError(t, err)
	assert.True(t, inv.TaxRate.IsZero())
}

func TestEditor_ApplyAllIsAllOrNothing(t *testing.T) {
	f := newTestFactory()
	draft := f.NewDraft()

	got, err := f.Editor().ApplyAll(draft,
		SetField{Field: FieldSubject, Value: "changed"},
		RemoveItem{ID: "item-1"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLastItem)
	assert.Contains(t, err.Error(), "edit 2")
	assert.Equal(t, draft, got)
}

func TestEditor_UnknownFieldsAreRejected(t *testing.T) {
	f := newTestFactory()
	draft := f.NewDraft()

	_, err := f.Editor().Apply(draft, SetField{Field: "color", Value: "red"})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = f.Editor().Apply(draft, UpdateItem{ID: "item-1", Field: "weight", Value: "3"})
	assert.ErrorIs(t, err, ErrUnknownField)

	var editErr *EditError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, "UpdateItem", editErr.Op)
}

func TestEditor_ItemCountNeverDropsBelowOne(t *testing.T) {
	f := newTestFactory()
	ed := f.Editor()
	inv, err := ed.ApplyAll(f.NewDraft(), AddItem{}, AddItem{})
	require.NoError(t, err)

	for _, id := range []string{"item-1", "item-2", "item-3"} {
		inv, _ = ed.Apply(inv, RemoveItem{ID: id})
		assert.GreaterOrEqual(t, len(inv.Items), 1)
	}
	assert.Equal(t, []string{"item-3"}, itemIDs(inv))
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Due-Date")
	require.NoError(t, err)
	assert.Equal(t, FieldDueDate, f)

	f, err = ParseField("number")
	require.NoError(t, err)
	assert.Equal(t, FieldInvoiceNumber, f)

	_, err = ParseField("id")
	assert.ErrorIs(t, err, ErrUnknownField)

	itemField, err := ParseItemField("qty")
	require.NoError(t, err)
	assert.Equal(t, ItemQuantity, itemField)

	itemField, err = ParseItemField("price")
	require.NoError(t, err)
	assert.Equal(t, ItemUnitPrice, itemField)
}

func itemIDs(inv models.Invoice) []string {
	ids := make([]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
