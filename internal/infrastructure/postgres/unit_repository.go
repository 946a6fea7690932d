package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

const unitColumns = `id, product_id, purchase_order_id, purchase_cost_usd, freight_cost_usd,
	purchase_rate, payment_rate, base_cost, dynamic_cost, status, created_at, updated_at`

// UnitRepo implementación de UnitRepository sobre PostgreSQL (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de unidades. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad nueva.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	orderID := (*string)(nil)
	if unit.PurchaseOrderID != "" {
		orderID = &unit.PurchaseOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.ProductID, orderID, unit.PurchaseCostUSD, unit.FreightCostUSD,
		unit.PurchaseRate, unit.PaymentRate, unit.BaseCost, unit.DynamicCost,
		unit.Status, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func scanUnit(row pgx.Row) (*entity.Unit, error) {
	var u entity.Unit
	var orderID *string
	err := row.Scan(
		&u.ID, &u.ProductID, &orderID, &u.PurchaseCostUSD, &u.FreightCostUSD,
		&u.PurchaseRate, &u.PaymentRate, &u.BaseCost, &u.DynamicCost,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		u.PurchaseOrderID = *orderID
	}
	return &u, nil
}

func (r *UnitRepo) queryUnits(query string, args ...any) ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

// ListByIDs obtiene las unidades cuyos ids existan; los ids que no resuelven
// simplemente no aparecen en el resultado.
func (r *UnitRepo) ListByIDs(ids []string) ([]*entity.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryUnits(`SELECT `+unitColumns+` FROM units WHERE id = ANY($1)`, ids)
}

// ListActive devuelve las unidades en estado activo (participan del prorrateo).
func (r *UnitRepo) ListActive() ([]*entity.Unit, error) {
	return r.queryUnits(
		`SELECT `+unitColumns+` FROM units WHERE status = ANY($1) ORDER BY created_at`,
		entity.ActiveUnitStatuses,
	)
}

// ListActiveByProduct devuelve las unidades activas de un producto.
func (r *UnitRepo) ListActiveByProduct(productID string) ([]*entity.Unit, error) {
	return r.queryUnits(
		`SELECT `+unitColumns+` FROM units WHERE product_id = $1 AND status = ANY($2)`,
		productID, entity.ActiveUnitStatuses,
	)
}

// ListByPurchaseOrder devuelve todas las unidades de una orden, en cualquier estado.
func (r *UnitRepo) ListByPurchaseOrder(purchaseOrderID string) ([]*entity.Unit, error) {
	return r.queryUnits(
		`SELECT `+unitColumns+` FROM units WHERE purchase_order_id = $1`,
		purchaseOrderID,
	)
}

// UpdateCosts escribe los campos denormalizados de costo (solo el motor de
// recálculo llama esto, dentro de su transacción).
func (r *UnitRepo) UpdateCosts(id string, baseCost, dynamicCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET base_cost = $2, dynamic_cost = $3, updated_at = now() WHERE id = $1`,
		id, baseCost, dynamicCost,
	)
	if err != nil {
		return fmt.Errorf("update unit costs: %w", err)
	}
	return nil
}

// UpdateStatus transiciona el estado de la unidad (flujos externos al motor).
func (r *UnitRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update unit status: %w", err)
	}
	return nil
}
