package repository

import "github.com/jhoicas/costos-api/internal/domain/entity"

// ProductCostRepository define el puerto para el caché de costos por producto.
type ProductCostRepository interface {
	Get(productID string) (*entity.ProductCostAggregate, error)
	Upsert(agg *entity.ProductCostAggregate) error
}
