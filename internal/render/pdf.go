package render

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"invoicer/internal/logger"
)

// PDF renders v as an A4 document and returns its bytes. Build v with
// NewPDFView so amounts only use characters of PDFCharset.
func PDF(ctx context.Context, v View) ([]byte, error) {
	const op = "PDF"
	log := logger.WithComponent("render")

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Invoice "+v.InvoiceNumber, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New("Date: "+v.Date, props.Text{Size: 9, Align: align.Right}),
			text.New("Due: "+v.DueDate, props.Text{Size: 9, Top: 4, Align: align.Right}),
		),
	)
	m.AddRow(10, text.NewCol(12, v.Subject, props.Text{Size: 11, Top: 2}))

	m.AddRow(30,
		col.New(6).Add(
			text.New("From", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(v.CompanyName, props.Text{Size: 10, Top: 5}),
			text.New(v.CompanyAddress, props.Text{Size: 9, Top: 10}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(v.ClientName, props.Text{Size: 10, Top: 5}),
			text.New(v.ClientAddress, props.Text{Size: 9, Top: 10}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, l := range v.Lines {
		m.AddRow(8,
			text.NewCol(6, l.Description, props.Text{Size: 9}),
			text.NewCol(1, l.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, l.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, l.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))

	m.AddRow(7,
		col.New(6),
		text.NewCol(3, "Subtotal", props.Text{Size: 9}),
		text.NewCol(3, v.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(6),
		text.NewCol(3, "Tax ("+v.TaxRate+")", props.Text{Size: 9}),
		text.NewCol(3, v.TaxAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(9,
		col.New(6),
		text.NewCol(3, "Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(3, v.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	if v.HasNotes() {
		m.AddRow(8, text.NewCol(12, "Notes", props.Text{Size: 9, Style: fontstyle.Bold, Top: 4}))
		m.AddRow(15, text.NewCol(12, v.Notes, props.Text{Size: 9}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate document: %w", op, err)
	}

	out := doc.GetBytes()
	log.Debug().
		Str("invoice_number", v.InvoiceNumber).
		Int("bytes", len(out)).
		Msg("PDF generated")

	return out, nil
}
