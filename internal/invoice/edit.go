package invoice

import (
	"fmt"
	"strings"

	"invoicer/pkg/models"
)

// Field names an editable invoice header field.
type Field string

const (
	FieldInvoiceNumber  Field = "invoice_number"
	FieldSubject        Field = "subject"
	FieldDate           Field = "date"
	FieldDueDate        Field = "due_date"
	FieldCompanyName    Field = "company_name"
	FieldCompanyAddress Field = "company_address"
	FieldClientName     Field = "client_name"
	FieldClientAddress  Field = "client_address"
	FieldNotes          Field = "notes"
	FieldTaxRate        Field = "tax_rate"
)

// ItemField names an editable line item field.
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemUnitPrice   ItemField = "unit_price"
)

// ParseField resolves a user-supplied field name. Dashes and case are ignored.
func ParseField(name string) (Field, error) {
	f := Field(canonicalName(name))
	switch f {
	case FieldInvoiceNumber, FieldSubject, FieldDate, FieldDueDate,
		FieldCompanyName, FieldCompanyAddress, FieldClientName, FieldClientAddress,
		FieldNotes, FieldTaxRate:
		return f, nil
	case "number":
		return FieldInvoiceNumber, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ParseItemField resolves a user-supplied item field name. "qty" and "price" are accepted as aliases.
func ParseItemField(name string) (ItemField, error) {
	switch f := ItemField(canonicalName(name)); f {
	case ItemDescription, ItemQuantity, ItemUnitPrice:
		return f, nil
	case "qty":
		return ItemQuantity, nil
	case "price":
		return ItemUnitPrice, nil
	}
	return "", fmt.Errorf("%w: item field %q", ErrUnknownField, name)
}

func canonicalName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Edit is one user change to an invoice snapshot.
type Edit interface {
	apply(inv models.Invoice, ids IDGenerator) (models.Invoice, error)
}

// SetField replaces a header field. Tax rate values are normalized.
type SetField struct {
	Field Field
	Value string
}

// SetTaxRate replaces the tax rate with the normalized raw value.
type SetTaxRate struct {
	Raw string
}

// AddItem appends a blank line item.
type AddItem struct{}

// RemoveItem deletes the line item with the given id. Removing the only item is rejected.
type RemoveItem struct {
	ID string
}

// UpdateItem changes one field of a line item. Quantity and price values are normalized.
type UpdateItem struct {
	ID    string
	Field ItemField
	Value string
}

// Editor applies edits to snapshots, assigning ids to new items.
type Editor struct {
	ids IDGenerator
}

// NewEditor creates an Editor. A nil ids falls back to UUIDGenerator.
func NewEditor(ids IDGenerator) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Editor{ids: ids}
}

// Editor returns an Editor sharing the factory's id generator.
func (f *Factory) Editor() *Editor {
	return NewEditor(f.ids)
}

// Apply returns the snapshot produced by e. inv is never modified; when the
// edit is rejected inv is returned as-is together with the error.
func (r *Editor) Apply(inv models.Invoice, e Edit) (models.Invoice, error) {
	next, err := e.apply(inv.Clone(), r.ids)
	if err != nil {
		return inv, err
	}
	return next, nil
}

// ApplyAll applies edits in order. It is all-or-nothing: the first rejected
// edit aborts the batch and the original snapshot is returned.
func (r *Editor) ApplyAll(inv models.Invoice, edits ...Edit) (models.Invoice, error) {
	next := inv
	for i, e := range edits {
		var err error
		if next, err = r.Apply(next, e); err != nil {
			return inv, fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	return next, nil
}

func (e SetField) apply(inv models.Invoice, _ IDGenerator) (models.Invoice, error) {
	switch e.Field {
	case FieldInvoiceNumber:
		inv.InvoiceNumber = e.Value
	case FieldSubject:
		inv.Subject = e.Value
	case FieldDate:
		inv.Date = strings.TrimSpace(e.Value)
	case FieldDueDate:
		inv.DueDate = strings.TrimSpace(e.Value)
	case FieldCompanyName:
		inv.CompanyName = e.Value
	case FieldCompanyAddress:
		inv.CompanyAddress = e.Value
	case FieldClientName:
		inv.ClientName = e.Value
	case FieldClientAddress:
		inv.ClientAddress = e.Value
	case FieldNotes:
		inv.Notes = e.Value
	case FieldTaxRate:
		inv.TaxRate = NormalizeTaxRate(e.Value)
	default:
		return inv, newEditError("SetField", string(e.Field), ErrUnknownField)
	}
	return inv, nil
}

func (e SetTaxRate) apply(inv models.Invoice, _ IDGenerator) (models.Invoice, error) {
	inv.TaxRate = NormalizeTaxRate(e.Raw)
	return inv, nil
}

func (AddItem) apply(inv models.Invoice, ids IDGenerator) (models.Invoice, error) {
	inv.Items = append(inv.Items, CreateDefaultItem(ids))
	return inv, nil
}

func (e RemoveItem) apply(inv models.Invoice, _ IDGenerator) (models.Invoice, error) {
	idx := inv.ItemIndex(e.ID)
	if idx < 0 {
		return inv, newEditError("RemoveItem", e.ID, ErrItemNotFound)
	}
	if len(inv.Items) <= 1 {
		return inv, newEditError("RemoveItem", e.ID, ErrLastItem)
	}
	inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
	return inv, nil
}

func (e UpdateItem) apply(inv models.Invoice, _ IDGenerator) (models.Invoice, error) {
	idx := inv.ItemIndex(e.ID)
	if idx < 0 {
		return inv, newEditError("UpdateItem", e.ID, ErrItemNotFound)
	}
	item := inv.Items[idx]
	switch e.Field {
	case ItemDescription:
		item.Description = e.Value
	case ItemQuantity:
		item.Quantity = NormalizeQuantity(e.Value)
	case ItemUnitPrice:
		item.UnitPrice = NormalizePrice(e.Value)
	default:
		return inv, newEditError("UpdateItem", string(e.Field), ErrUnknownField)
	}
	inv.Items[idx] = item
	return inv, nil
}
