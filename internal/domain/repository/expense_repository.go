package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
// El motor solo escribe la bandera consumed y su marca de tiempo; la
// creación viene del flujo de captura de gastos y nada se elimina una vez
// consumido (traza de auditoría).
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(limit, offset int) ([]*entity.Expense, error)
	// ListUnconsumedProratable devuelve gastos de clase shared con
	// is_proratable = true, consumed = false y tipo distinto de freight.
	ListUnconsumedProratable() ([]*entity.Expense, error)
	// SumFreightByPurchaseOrder suma en moneda local los gastos de flete
	// contabilizados contra la orden.
	SumFreightByPurchaseOrder(purchaseOrderID string) (decimal.Decimal, error)
	// MarkConsumed marca los gastos como consumidos con guarda condicional
	// (solo filas con consumed = false). Devuelve cuántas filas cambiaron:
	// si difiere de len(ids), otro recálculo se adelantó y el caller debe
	// abortar la transacción.
	MarkConsumed(ids []string, at time.Time) (int64, error)
}
