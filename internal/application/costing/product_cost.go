package costing

import (
	"context"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// ProductCostUseCase lectura del caché de costos por producto.
type ProductCostUseCase struct {
	aggRepo repository.ProductCostRepository
}

// NewProductCostUseCase construye el caso de uso.
func NewProductCostUseCase(aggRepo repository.ProductCostRepository) *ProductCostUseCase {
	return &ProductCostUseCase{aggRepo: aggRepo}
}

// GetProductCost devuelve el agregado cacheado del producto. El valor puede
// estar desactualizado entre recálculos; para cálculos sensibles a
// corrección se leen las unidades vivas, nunca este caché.
func (uc *ProductCostUseCase) GetProductCost(_ context.Context, productID string) (*entity.ProductCostAggregate, error) {
	agg, err := uc.aggRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, domain.ErrNotFound
	}
	return agg, nil
}
