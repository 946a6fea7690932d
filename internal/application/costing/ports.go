package costing

import (
	"context"

	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la garantía de atomicidad del recálculo:
// o cambian juntos el costo dinámico de todas las unidades activas y la
// bandera consumed de todos los gastos candidatos, o no cambia nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		unitRepo repository.UnitRepository,
		expenseRepo repository.ExpenseRepository,
	) error) error
}
