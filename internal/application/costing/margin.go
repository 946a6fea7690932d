package costing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/costing"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// MarginUseCase calcula el margen bruto de una venta a partir del costo
// dinámico vigente de las unidades asignadas. Consumidor de solo lectura de
// la salida del motor: el costo de una unidad vendida quedó congelado al
// transicionar a sold.
type MarginUseCase struct {
	unitRepo repository.UnitRepository
}

// NewMarginUseCase construye el caso de uso.
func NewMarginUseCase(unitRepo repository.UnitRepository) *MarginUseCase {
	return &MarginUseCase{unitRepo: unitRepo}
}

// ComputeMargin suma el costo dinámico de las unidades y lo resta del precio
// de venta. Un id de unidad que no resuelve aporta costo cero en vez de
// fallar: se espera que el caller valide existencia aguas arriba.
func (uc *MarginUseCase) ComputeMargin(_ context.Context, salePrice decimal.Decimal, unitIDs []string) (*costing.MarginBreakdown, error) {
	total := decimal.Zero
	if len(unitIDs) > 0 {
		units, err := uc.unitRepo.ListByIDs(unitIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			total = total.Add(u.DynamicCost)
		}
	}
	m := costing.Margin(salePrice, total)
	return &m, nil
}
