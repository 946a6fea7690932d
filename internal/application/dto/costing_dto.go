package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/application/costing"
	domaincosting "github.com/jhoicas/costos-api/internal/domain/costing"
	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// RecalculationResponse resultado de un recálculo, en todos los casos (un
// no-op devuelve ceros sin error).
type RecalculationResponse struct {
	UnitsUpdated    int    `json:"units_updated"`
	ExpensesApplied int    `json:"expenses_applied"`
	ImpactPerUnit   string `json:"impact_per_unit"`
}

// NewRecalculationResponse mapea el resultado del orquestador. El redondeo a
// dos decimales ocurre aquí, en presentación, nunca dentro del cálculo.
func NewRecalculationResponse(res *costing.RecalculationResult) RecalculationResponse {
	return RecalculationResponse{
		UnitsUpdated:    res.UnitsUpdated,
		ExpensesApplied: res.ExpensesApplied,
		ImpactPerUnit:   res.ImpactPerUnit.Round(2).String(),
	}
}

// ProductCostResponse agregado cacheado de costos de un producto.
type ProductCostResponse struct {
	ProductID       string    `json:"product_id"`
	AverageCost     string    `json:"average_cost"`
	MinCost         string    `json:"min_cost"`
	MaxCost         string    `json:"max_cost"`
	ActiveUnitCount int       `json:"active_unit_count"`
	RefreshedAt     time.Time `json:"refreshed_at"`
}

// NewProductCostResponse mapea el agregado.
func NewProductCostResponse(agg *entity.ProductCostAggregate) ProductCostResponse {
	return ProductCostResponse{
		ProductID:       agg.ProductID,
		AverageCost:     agg.AverageCost.Round(2).String(),
		MinCost:         agg.MinCost.Round(2).String(),
		MaxCost:         agg.MaxCost.Round(2).String(),
		ActiveUnitCount: agg.ActiveUnitCount,
		RefreshedAt:     agg.RefreshedAt,
	}
}

// MarginRequest entrada para calcular margen de una venta.
type MarginRequest struct {
	SalePrice decimal.Decimal `json:"sale_price"`
	UnitIDs   []string        `json:"unit_ids"`
}

// MarginResponse desglose del margen bruto.
type MarginResponse struct {
	TotalCost     string `json:"total_cost"`
	GrossProfit   string `json:"gross_profit"`
	MarginPercent string `json:"margin_percent"`
}

// NewMarginResponse mapea el desglose.
func NewMarginResponse(m *domaincosting.MarginBreakdown) MarginResponse {
	return MarginResponse{
		TotalCost:     m.TotalCost.Round(2).String(),
		GrossProfit:   m.GrossProfit.Round(2).String(),
		MarginPercent: m.MarginPercent.Round(2).String(),
	}
}
