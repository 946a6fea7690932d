package costing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// AggregateUpdater recalcula el resumen promedio/mín/máx de costo dinámico
// de un producto a partir de sus unidades activas y sobreescribe el caché.
type AggregateUpdater struct {
	unitRepo repository.UnitRepository
	aggRepo  repository.ProductCostRepository
}

// NewAggregateUpdater construye el actualizador.
func NewAggregateUpdater(unitRepo repository.UnitRepository, aggRepo repository.ProductCostRepository) *AggregateUpdater {
	return &AggregateUpdater{unitRepo: unitRepo, aggRepo: aggRepo}
}

// RefreshProduct recalcula el agregado del producto. Sin unidades activas el
// agregado previo queda intacto: desactualizado-pero-válido es preferible a
// un cero sin significado. No es error llamar con un producto sin unidades.
func (a *AggregateUpdater) RefreshProduct(productID string) error {
	units, err := a.unitRepo.ListActiveByProduct(productID)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return nil
	}

	sum := units[0].DynamicCost
	min := units[0].DynamicCost
	max := units[0].DynamicCost
	for _, u := range units[1:] {
		c := u.DynamicCost
		sum = sum.Add(c)
		if c.LessThan(min) {
			min = c
		}
		if c.GreaterThan(max) {
			max = c
		}
	}

	agg := &entity.ProductCostAggregate{
		ProductID:       productID,
		AverageCost:     sum.Div(decimal.NewFromInt(int64(len(units)))),
		MinCost:         min,
		MaxCost:         max,
		ActiveUnitCount: len(units),
		RefreshedAt:     time.Now(),
	}
	return a.aggRepo.Upsert(agg)
}
