// Package pdf implementa la representación imprimible de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Factura + Fecha emisión              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Monto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL                        │
//	│  Vencimiento y estado                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Rowther/multitenantcrm/internal/application/billing"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(invoice *entity.Invoice, company *entity.Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.InvoiceNumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range invoice.Items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice)...)
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y número + fecha de emisión (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+invoice.IssuedDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// companyRow: datos de contacto del emisor.
func companyRow(company *entity.Company) core.Row {
	contact := company.Address
	if company.ContactPhone != "" {
		contact += "  Tel: " + company.ContactPhone
	}
	if company.ContactEmail != "" {
		contact += "  " + company.ContactEmail
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(contact, props.Text{Size: 8, Color: colorGray, Top: 1}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(9).Add(text.New("Descripción", props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1,
		})),
		col.New(3).Add(text.New("Monto", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func itemRow(item entity.InvoiceItem) core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New(item.Description, props.Text{Size: 9, Top: 1})),
		col.New(3).Add(text.New(item.Amount.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func totalsRows(invoice *entity.Invoice) []core.Row {
	totalLine := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{
				Style: style, Size: 9, Align: align.Right, Top: 1,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: 9, Align: align.Right, Top: 1,
			})),
		)
	}
	return []core.Row{
		totalLine("Subtotal", invoice.Subtotal.StringFixed(2), false),
		totalLine("Impuesto", invoice.TaxAmount.StringFixed(2), false),
		totalLine("TOTAL", invoice.TotalAmount.StringFixed(2), true),
	}
}

func footerRow(invoice *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Vence: %s    Estado: %s",
				invoice.DueDate.Format("02/01/2006"), invoice.Status), props.Text{
				Size: 8, Color: colorGray, Top: 3,
			}),
		),
	)
}
