package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#2563EB")
	fg     = lipgloss.Color("#E5E7EB")
	dim    = lipgloss.Color("#6B7280")
	faint  = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	headerBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	labelStyle  = lipgloss.NewStyle().Foreground(dim)
	strongStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	partyStyle  = lipgloss.NewStyle().Width(36).MarginRight(4)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
)

// Table column widths. The description column takes what is left.
const (
	previewWidth = 76
	qtyWidth     = 6
	amountWidth  = 18
	descWidth    = previewWidth - qtyWidth - 2*amountWidth
)

// Preview renders v for a terminal.
func Preview(v View) string {
	var b strings.Builder

	header := titleStyle.Render("INVOICE "+v.InvoiceNumber) + "\n" +
		labelStyle.Render("Subject: ") + v.Subject + "\n" +
		labelStyle.Render("Date:    ") + v.Date + "\n" +
		labelStyle.Render("Due:     ") + v.DueDate
	b.WriteString(headerBox.Render(header))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		partyStyle.Render(party("From", v.CompanyName, v.CompanyAddress)),
		partyStyle.Render(party("Bill to", v.ClientName, v.ClientAddress)),
	))
	b.WriteString("\n\n")

	b.WriteString(row(labelStyle, "Description", "Qty", "Unit price", "Amount"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(strings.Repeat("─", previewWidth)))
	b.WriteString("\n")
	for _, l := range v.Lines {
		b.WriteString(row(lipgloss.NewStyle(), l.Description, l.Quantity, l.UnitPrice, l.Amount))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(strings.Repeat("─", previewWidth)))
	b.WriteString("\n")

	b.WriteString(totalLine(labelStyle, "Subtotal", v.Subtotal))
	b.WriteString(totalLine(labelStyle, "Tax ("+v.TaxRate+")", v.TaxAmount))
	b.WriteString(totalLine(strongStyle, "Total", v.Total))

	if v.HasNotes() {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(v.Notes)
		b.WriteString("\n")
	}

	return b.String()
}

func party(title, name, address string) string {
	return labelStyle.Render(title) + "\n" + strongStyle.Render(name) + "\n" + address
}

func row(style lipgloss.Style, desc, qty, unit, amount string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Width(descWidth).Render(desc),
		style.Width(qtyWidth).Align(lipgloss.Right).Render(qty),
		style.Width(amountWidth).Align(lipgloss.Right).Render(unit),
		style.Width(amountWidth).Align(lipgloss.Right).Render(amount),
	)
}

func totalLine(style lipgloss.Style, label, amount string) string {
	return lipgloss.NewStyle().Width(previewWidth-2*amountWidth).Render("") +
		style.Width(amountWidth).Render(label) +
		style.Width(amountWidth).Align(lipgloss.Right).Render(amount) + "\n"
}
