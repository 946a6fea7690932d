package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// FreightAllocator reparte el flete de una orden de compra en partes iguales
// entre las unidades originadas en esa orden.
//
// El divisor son TODAS las unidades vinculadas a la orden, sin importar su
// estado de ciclo de vida: el flete se pagó una sola vez por el embarque
// completo. Nótese la asimetría con el prorrateo de gastos compartidos, que
// divide solo entre unidades activas; se preserva el comportamiento
// observado en producción (pendiente de confirmación con producto).
type FreightAllocator struct {
	unitRepo    repository.UnitRepository
	expenseRepo repository.ExpenseRepository
}

// NewFreightAllocator construye el asignador.
func NewFreightAllocator(unitRepo repository.UnitRepository, expenseRepo repository.ExpenseRepository) *FreightAllocator {
	return &FreightAllocator{unitRepo: unitRepo, expenseRepo: expenseRepo}
}

// PerUnit devuelve el flete por unidad en moneda local para la orden dada.
// Orden vacía, sin unidades vinculadas o sin gastos de flete => cero (una
// referencia colgante no es un error: la asignación debe ser total para no
// bloquear la agregación).
func (a *FreightAllocator) PerUnit(purchaseOrderID string) (decimal.Decimal, error) {
	if purchaseOrderID == "" {
		return decimal.Zero, nil
	}
	total, err := a.expenseRepo.SumFreightByPurchaseOrder(purchaseOrderID)
	if err != nil {
		return decimal.Zero, err
	}
	if total.IsZero() {
		return decimal.Zero, nil
	}
	units, err := a.unitRepo.ListByPurchaseOrder(purchaseOrderID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(units) == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(len(units)))), nil
}
