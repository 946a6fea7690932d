package costing

import "github.com/shopspring/decimal"

// MarginBreakdown resultado del cálculo de margen bruto de una venta.
type MarginBreakdown struct {
	TotalCost     decimal.Decimal
	GrossProfit   decimal.Decimal
	MarginPercent decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Margin calcula el margen bruto: utilidad = precio - costo total;
// porcentaje = utilidad / precio × 100. Con precio cero el porcentaje es
// cero (no hay base sobre la cual expresar el margen).
func Margin(salePrice, totalCost decimal.Decimal) MarginBreakdown {
	profit := salePrice.Sub(totalCost)
	percent := decimal.Zero
	if !salePrice.IsZero() {
		percent = profit.Div(salePrice).Mul(hundred)
	}
	return MarginBreakdown{
		TotalCost:     totalCost,
		GrossProfit:   profit,
		MarginPercent: percent,
	}
}
