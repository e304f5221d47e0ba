// Package draft reads invoice drafts from YAML files.
//
// A draft file carries raw user input. Nothing in it is trusted: it is
// turned into invoice edits and applied to a default snapshot, so the
// same normalization as interactive editing applies.
package draft

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

// ErrEmptyDraft is returned for files that decode to nothing.
var ErrEmptyDraft = errors.New("draft file is empty")

// Raw is a YAML scalar kept as written, so "2", 2 and "2.0" all reach the
// normalization functions as text.
type Raw struct {
	Value string
	Set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Raw) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	r.Value = node.Value
	r.Set = node.Tag != "!!null"
	return nil
}

// Item is one line item of a draft file.
type Item struct {
	Description string `yaml:"description"`
	Quantity    Raw    `yaml:"quantity"`
	UnitPrice   Raw    `yaml:"unit_price"`
}

// Edits returns the edits that fill the line item with id from it. Quantity
// and price are left alone when the draft does not set them.
func (it Item) Edits(id string) []invoice.Edit {
	edits := []invoice.Edit{
		invoice.UpdateItem{ID: id, Field: invoice.ItemDescription, Value: it.Description},
	}
	if it.Quantity.Set {
		edits = append(edits, invoice.UpdateItem{ID: id, Field: invoice.ItemQuantity, Value: it.Quantity.Value})
	}
	if it.UnitPrice.Set {
		edits = append(edits, invoice.UpdateItem{ID: id, Field: invoice.ItemUnitPrice, Value: it.UnitPrice.Value})
	}
	return edits
}

// Draft is the decoded content of a draft file. Empty fields keep the
// generated defaults.
type Draft struct {
	InvoiceNumber  string `yaml:"invoice_number"`
	Subject        string `yaml:"subject"`
	Date           string `yaml:"date"`
	DueDate        string `yaml:"due_date"`
	CompanyName    string `yaml:"company_name"`
	CompanyAddress string `yaml:"company_address"`
	ClientName     string `yaml:"client_name"`
	ClientAddress  string `yaml:"client_address"`
	TaxRate        Raw    `yaml:"tax_rate"`
	Notes          string `yaml:"notes"`
	Items          []Item `yaml:"items"`
}

// Load reads and decodes the draft file at path.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes draft YAML. Unknown keys are rejected to catch typos.
func Parse(data []byte) (*Draft, error) {
	var d Draft
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDraft
		}
		return nil, err
	}
	return &d, nil
}

// Apply applies the draft to base through the editor and returns the new
// snapshot. Items in the draft replace the items of base: the first draft
// item reuses the first base item, further items are added, and surplus base
// items are removed. On error base is returned unchanged.
func (d *Draft) Apply(ed *invoice.Editor, base models.Invoice) (models.Invoice, error) {
	inv, err := ed.ApplyAll(base, d.headerEdits()...)
	if err != nil {
		return base, err
	}
	if len(d.Items) == 0 {
		return inv, nil
	}

	ids := make([]string, len(d.Items))
	for i := range d.Items {
		if i < len(inv.Items) {
			ids[i] = inv.Items[i].ID
			continue
		}
		if inv, err = ed.Apply(inv, invoice.AddItem{}); err != nil {
			return base, err
		}
		ids[i] = inv.Items[len(inv.Items)-1].ID
	}

	var edits []invoice.Edit
	for i, it := range d.Items {
		edits = append(edits, it.Edits(ids[i])...)
	}
	for _, surplus := range inv.Items[len(d.Items):] {
		edits = append(edits, invoice.RemoveItem{ID: surplus.ID})
	}

	if inv, err = ed.ApplyAll(inv, edits...); err != nil {
		return base, err
	}
	return inv, nil
}

func (d *Draft) headerEdits() []invoice.Edit {
	var edits []invoice.Edit

	fields := []struct {
		field invoice.Field
		value string
	}{
		{invoice.FieldInvoiceNumber, d.InvoiceNumber},
		{invoice.FieldSubject, d.Subject},
		{invoice.FieldDate, d.Date},
		{invoice.FieldDueDate, d.DueDate},
		{invoice.FieldCompanyName, d.CompanyName},
		{invoice.FieldCompanyAddress, d.CompanyAddress},
		{invoice.FieldClientName, d.ClientName},
		{invoice.FieldClientAddress, d.ClientAddress},
		{invoice.FieldNotes, d.Notes},
	}
	for _, f := range fields {
		if f.value != "" {
			edits = append(edits, invoice.SetField{Field: f.field, Value: f.value})
		}
	}
	if d.TaxRate.Set {
		edits = append(edits, invoice.SetTaxRate{Raw: d.TaxRate.Value})
	}
	return edits
}
