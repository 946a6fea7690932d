package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// ReceiveUnitsRequest entrada para recibir unidades de una compra.
type ReceiveUnitsRequest struct {
	ProductID       string           `json:"product_id"`
	PurchaseOrderID string           `json:"purchase_order_id"`
	Count           int              `json:"count"`
	PurchaseCostUSD decimal.Decimal  `json:"purchase_cost_usd"`
	FreightCostUSD  decimal.Decimal  `json:"freight_cost_usd"`
	PurchaseRate    *decimal.Decimal `json:"purchase_rate"`
	PaymentRate     *decimal.Decimal `json:"payment_rate"`
}

// TransitionUnitRequest entrada para transicionar el estado de una unidad.
type TransitionUnitRequest struct {
	Status string `json:"status"`
}

// UnitResponse representación de una unidad.
type UnitResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	PurchaseOrderID string    `json:"purchase_order_id,omitempty"`
	PurchaseCostUSD string    `json:"purchase_cost_usd"`
	FreightCostUSD  string    `json:"freight_cost_usd"`
	BaseCost        string    `json:"base_cost"`
	DynamicCost     string    `json:"dynamic_cost"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewUnitResponse mapea una unidad.
func NewUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{
		ID:              u.ID,
		ProductID:       u.ProductID,
		PurchaseOrderID: u.PurchaseOrderID,
		PurchaseCostUSD: u.PurchaseCostUSD.Round(2).String(),
		FreightCostUSD:  u.FreightCostUSD.Round(2).String(),
		BaseCost:        u.BaseCost.Round(2).String(),
		DynamicCost:     u.DynamicCost.Round(2).String(),
		Status:          u.Status,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// NewUnitResponses mapea un listado.
func NewUnitResponses(units []*entity.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, NewUnitResponse(u))
	}
	return out
}
