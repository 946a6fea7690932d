package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// CreateExpenseRequest entrada para registrar un gasto.
// is_proratable omitido toma el valor por defecto de la categoría.
type CreateExpenseRequest struct {
	Category        string           `json:"category"`
	Type            string           `json:"type"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	ExchangeRate    *decimal.Decimal `json:"exchange_rate"`
	IsProratable    *bool            `json:"is_proratable"`
	SaleID          string           `json:"sale_id"`
	PurchaseOrderID string           `json:"purchase_order_id"`
}

// ExpenseResponse representación de un gasto.
type ExpenseResponse struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	Class           string     `json:"class"`
	Type            string     `json:"type,omitempty"`
	Description     string     `json:"description"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency,omitempty"`
	AmountLocal     string     `json:"amount_local"`
	IsProratable    bool       `json:"is_proratable"`
	Consumed        bool       `json:"consumed"`
	ConsumedAt      *time.Time `json:"consumed_at,omitempty"`
	SaleID          string     `json:"sale_id,omitempty"`
	PurchaseOrderID string     `json:"purchase_order_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewExpenseResponse mapea un gasto.
func NewExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID,
		Category:        e.Category,
		Class:           e.Class(),
		Type:            e.Type,
		Description:     e.Description,
		Amount:          e.Amount.Round(2).String(),
		Currency:        e.Currency,
		AmountLocal:     e.AmountLocal().Round(2).String(),
		IsProratable:    e.IsProratable,
		Consumed:        e.Consumed,
		ConsumedAt:      e.ConsumedAt,
		SaleID:          e.SaleID,
		PurchaseOrderID: e.PurchaseOrderID,
		CreatedAt:       e.CreatedAt,
	}
}

// NewExpenseResponses mapea un listado.
func NewExpenseResponses(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewExpenseResponse(e))
	}
	return out
}
