// Package render turns invoice snapshots into things people read: a
// terminal preview and a PDF document.
//
// Renderers never compute amounts themselves. NewView runs the calculator
// once and formats every number, and both sinks only lay out strings.
package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"invoicer/internal/invoice"
	"invoicer/internal/money"
	"invoicer/pkg/models"
)

// Line is one formatted line item.
type Line struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// View is a fully formatted invoice.
type View struct {
	InvoiceNumber  string
	Subject        string
	Date           string
	DueDate        string
	CompanyName    string
	CompanyAddress string
	ClientName     string
	ClientAddress  string
	Lines          []Line
	TaxRate        string
	Subtotal       string
	TaxAmount      string
	Total          string
	Notes          string
}

// NewView formats inv with f.
func NewView(inv models.Invoice, f *money.Formatter) View {
	totals := invoice.Compute(inv)

	v := View{
		InvoiceNumber:  inv.InvoiceNumber,
		Subject:        inv.Subject,
		Date:           inv.Date,
		DueDate:        inv.DueDate,
		CompanyName:    inv.CompanyName,
		CompanyAddress: strings.TrimSpace(inv.CompanyAddress),
		ClientName:     inv.ClientName,
		ClientAddress:  strings.TrimSpace(inv.ClientAddress),
		Lines:          make([]Line, 0, len(inv.Items)),
		TaxRate:        inv.TaxRate.String() + "%",
		Subtotal:       f.Format(totals.Subtotal),
		TaxAmount:      f.Format(totals.TaxAmount),
		Total:          f.Format(totals.Total),
		Notes:          strings.TrimSpace(inv.Notes),
	}
	for _, item := range inv.Items {
		v.Lines = append(v.Lines, Line{
			Description: item.Description,
			Quantity:    strconv.Itoa(item.Quantity),
			UnitPrice:   f.Format(item.UnitPrice),
			Amount:      f.Format(invoice.LineAmount(item)),
		})
	}
	return v
}

// PDFCharset is the code page of the core fonts the PDF renderer draws with.
// Characters outside it do not survive into the document.
var PDFCharset = charmap.Windows1252

// NewPDFView is NewView with amounts restricted to PDFCharset.
func NewPDFView(inv models.Invoice, f *money.Formatter) View {
	return NewView(inv, f.Charset(PDFCharset))
}

// HasNotes reports whether the notes section should be shown.
func (v View) HasNotes() bool { return v.Notes != "" }
