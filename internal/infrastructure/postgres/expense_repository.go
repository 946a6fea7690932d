package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, category, type, description, amount, currency, exchange_rate,
	is_proratable, consumed, consumed_at, sale_id, purchase_order_id, created_at`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto nuevo (siempre con consumed = false).
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, NULL, $9, $10, $11)`
	saleID := (*string)(nil)
	if expense.SaleID != "" {
		saleID = &expense.SaleID
	}
	orderID := (*string)(nil)
	if expense.PurchaseOrderID != "" {
		orderID = &expense.PurchaseOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Category, expense.Type, expense.Description,
		expense.Amount, expense.Currency, expense.ExchangeRate,
		expense.IsProratable, saleID, orderID, expense.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	var saleID, orderID *string
	err := row.Scan(
		&e.ID, &e.Category, &e.Type, &e.Description, &e.Amount, &e.Currency,
		&e.ExchangeRate, &e.IsProratable, &e.Consumed, &e.ConsumedAt,
		&saleID, &orderID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if saleID != nil {
		e.SaleID = *saleID
	}
	if orderID != nil {
		e.PurchaseOrderID = *orderID
	}
	return &e, nil
}

func (r *ExpenseRepo) queryExpenses(query string, args ...any) ([]*entity.Expense, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List lista gastos con paginación, más recientes primero.
func (r *ExpenseRepo) List(limit, offset int) ([]*entity.Expense, error) {
	return r.queryExpenses(
		`SELECT `+expenseColumns+` FROM expenses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// ListUnconsumedProratable devuelve los gastos que califican para el
// prorrateo: clase shared (administrative/operational), prorrateables, no
// consumidos, excluyendo flete (se reparte por orden de compra).
func (r *ExpenseRepo) ListUnconsumedProratable() ([]*entity.Expense, error) {
	return r.queryExpenses(`
		SELECT ` + expenseColumns + ` FROM expenses
		WHERE category IN ('administrative', 'operational')
		  AND is_proratable = true
		  AND consumed = false
		  AND type <> 'freight'
		ORDER BY created_at`)
}

// SumFreightByPurchaseOrder suma en moneda local el flete de una orden.
// La conversión usa la tasa registrada en el gasto; sin tasa el monto va tal cual.
func (r *ExpenseRepo) SumFreightByPurchaseOrder(purchaseOrderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount * COALESCE(NULLIF(exchange_rate, 0), 1)), 0)
		FROM expenses
		WHERE purchase_order_id = $1 AND type = 'freight'`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, purchaseOrderID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum freight: %w", err)
	}
	return total, nil
}

// MarkConsumed marca los gastos como consumidos con guarda condicional:
// solo filas todavía en consumed = false cambian. El caller compara el
// conteo devuelto con len(ids) para detectar un recálculo concurrente.
func (r *ExpenseRepo) MarkConsumed(ids []string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE expenses SET consumed = true, consumed_at = $2
		WHERE id = ANY($1) AND consumed = false`,
		ids, at,
	)
	if err != nil {
		return 0, fmt.Errorf("mark expenses consumed: %w", err)
	}
	return cmd.RowsAffected(), nil
}
