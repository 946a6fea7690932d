package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

var _ repository.ProductCostRepository = (*ProductCostRepo)(nil)

// ProductCostRepo implementación del caché de agregados de costo por
// producto sobre PostgreSQL (usable con pool o tx).
type ProductCostRepo struct {
	q Querier
}

// NewProductCostRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductCostRepository(q Querier) *ProductCostRepo {
	return &ProductCostRepo{q: q}
}

// Get obtiene el agregado cacheado de un producto; nil si nunca se calculó.
func (r *ProductCostRepo) Get(productID string) (*entity.ProductCostAggregate, error) {
	query := `
		SELECT product_id, average_cost, min_cost, max_cost, active_unit_count, refreshed_at
		FROM product_cost_aggregates WHERE product_id = $1`
	var a entity.ProductCostAggregate
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&a.ProductID, &a.AverageCost, &a.MinCost, &a.MaxCost, &a.ActiveUnitCount, &a.RefreshedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product cost aggregate: %w", err)
	}
	return &a, nil
}

// Upsert sobreescribe el agregado del producto.
func (r *ProductCostRepo) Upsert(agg *entity.ProductCostAggregate) error {
	query := `
		INSERT INTO product_cost_aggregates (product_id, average_cost, min_cost, max_cost, active_unit_count, refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id)
		DO UPDATE SET average_cost = EXCLUDED.average_cost, min_cost = EXCLUDED.min_cost,
			max_cost = EXCLUDED.max_cost, active_unit_count = EXCLUDED.active_unit_count,
			refreshed_at = EXCLUDED.refreshed_at`
	_, err := r.q.Exec(context.Background(), query,
		agg.ProductID, agg.AverageCost, agg.MinCost, agg.MaxCost, agg.ActiveUnitCount, agg.RefreshedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product cost aggregate: %w", err)
	}
	return nil
}
