// Package pdf implementa la generación de los documentos imprimibles del
// negocio: cotizaciones y remisiones de entrega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento + Número  │  Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + GSTIN + Dirección                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Tarifa | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL (cotizaciones) / Vehículo + Entregado por (remisión) │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateEstimatePDF genera el PDF de una cotización y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateEstimatePDF(_ context.Context, est *entity.Estimate) ([]byte, error) {
	m := newDocument("Cotización", est.ClientName)

	m.AddRows(headerRow("COTIZACIÓN", est.Number, est.Date.Format("2006-01-02")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRows(est.ClientName, est.ClientGST, "")...)
	m.AddRows(itemsTable(est.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(8),
		text.NewCol(2, "TOTAL", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, est.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Align: align.Right}),
	))
	if est.Notes != "" {
		m.AddRows(row.New(8).Add(
			text.NewCol(12, "Notas: "+est.Notes, props.Text{Size: 8, Color: colorGray}),
		))
	}

	return render(m)
}

// GenerateChallanPDF genera el PDF de una remisión de entrega.
func (g *MarotoPDFGenerator) GenerateChallanPDF(_ context.Context, ch *entity.DeliveryChallan) ([]byte, error) {
	m := newDocument("Remisión de entrega", ch.ClientName)

	m.AddRows(headerRow("REMISIÓN DE ENTREGA", ch.Number, ch.Date.Format("2006-01-02")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRows(ch.ClientName, ch.ClientGST, ch.Address)...)
	m.AddRows(itemsTable(ch.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	footer := ""
	if ch.VehicleNo != "" {
		footer = "Vehículo: " + ch.VehicleNo
	}
	if ch.DeliveredBy != "" {
		if footer != "" {
			footer += "  ·  "
		}
		footer += "Entregado por: " + ch.DeliveredBy
	}
	if footer != "" {
		m.AddRows(row.New(8).Add(
			text.NewCol(12, footer, props.Text{Size: 8, Color: colorGray}),
		))
	}

	return render(m)
}

// ── Bloques compartidos ───────────────────────────────────────────────────────

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func headerRow(kind, number, date string) core.Row {
	return row.New(14).Add(
		text.NewCol(8, kind, props.Text{Size: 14, Style: fontstyle.Bold, Color: colorPrimary}),
		text.NewCol(4, fmt.Sprintf("N° %s\n%s", number, date), props.Text{Size: 9, Align: align.Right}),
	)
}

func clientRows(name, gst, address string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			text.NewCol(12, "Cliente: "+name, props.Text{Size: 9, Style: fontstyle.Bold}),
		),
	}
	if gst != "" {
		rows = append(rows, row.New(5).Add(
			text.NewCol(12, "GSTIN: "+gst, props.Text{Size: 8, Color: colorGray}),
		))
	}
	if address != "" {
		rows = append(rows, row.New(5).Add(
			text.NewCol(12, address, props.Text{Size: 8, Color: colorGray}),
		))
	}
	return rows
}

func itemsTable(items []entity.DocumentItem) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(1, "Cant", props.Text{Style: fontstyle.Bold, Size: 8}),
			text.NewCol(7, "Descripción", props.Text{Style: fontstyle.Bold, Size: 8}),
			text.NewCol(2, "Tarifa", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
			text.NewCol(2, "Importe", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		),
	}
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			text.NewCol(1, fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8}),
			text.NewCol(7, it.Name, props.Text{Size: 8}),
			text.NewCol(2, it.Rate.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, it.Amount.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
		))
	}
	return rows
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}
