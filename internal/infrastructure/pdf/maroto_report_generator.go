// Package pdf implementa la generación del Reporte de Costos por Producto
// (vista de reportería sobre el caché de agregados CTRU).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Costos CTRU  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Unid. | Prom. | Mín. | Máx.        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de caché (agregados al último recálculo)    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/costos-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateCostReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCostReportPDF(
	_ context.Context,
	rows []report.CostReportRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Costos por Producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF de costos: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Reporte de Costos CTRU", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Size: 8, Style: fontstyle.Bold, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header("SKU", 2),
		header("Producto", 4),
		header("Unid. activas", 2),
		header("Costo prom.", 2),
		header("Mín. / Máx.", 2),
	)
}

func tableRow(r report.CostReportRow) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a}))
	}
	unitCount, avg, minMax := "-", "-", "-"
	if r.Agg != nil {
		unitCount = fmt.Sprintf("%d", r.Agg.ActiveUnitCount)
		// Redondeo a dos decimales solo aquí, en presentación.
		avg = r.Agg.AverageCost.Round(2).String()
		minMax = r.Agg.MinCost.Round(2).String() + " / " + r.Agg.MaxCost.Round(2).String()
	}
	return row.New(6).Add(
		cell(r.Product.SKU, 2, align.Left),
		cell(r.Product.Name, 4, align.Left),
		cell(unitCount, 2, align.Right),
		cell(avg, 2, align.Right),
		cell(minMax, 2, align.Right),
	)
}

func footerRow() core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Los valores corresponden al último recálculo confirmado; pueden diferir del costo vivo entre recálculos.", props.Text{
				Size: 7, Color: colorGray,
			}),
		),
	)
}
