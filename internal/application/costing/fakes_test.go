package costing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
	"github.com/jhoicas/costos-api/pkg/logger"
)

// memStore almacén en memoria compartido por los repos falsos. Soporta
// snapshot/restore para simular el rollback transaccional del TxRunner.
type memStore struct {
	units    map[string]*entity.Unit
	expenses map[string]*entity.Expense
	aggs     map[string]*entity.ProductCostAggregate

	// beforeMark se invoca al inicio de MarkConsumed; permite simular otro
	// proceso consumiendo gastos entre la lectura y el commit.
	beforeMark func(s *memStore)
}

func newMemStore() *memStore {
	return &memStore{
		units:    make(map[string]*entity.Unit),
		expenses: make(map[string]*entity.Expense),
		aggs:     make(map[string]*entity.ProductCostAggregate),
	}
}

func (s *memStore) addUnit(u *entity.Unit)     { s.units[u.ID] = u }
func (s *memStore) addExpense(e *entity.Expense) { s.expenses[e.ID] = e }

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, u := range s.units {
		cp := *u
		c.units[id] = &cp
	}
	for id, e := range s.expenses {
		cp := *e
		c.expenses[id] = &cp
	}
	for id, a := range s.aggs {
		cp := *a
		c.aggs[id] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.units = snap.units
	s.expenses = snap.expenses
	s.aggs = snap.aggs
}

// memUnitRepo implementa repository.UnitRepository sobre el memStore.
type memUnitRepo struct{ s *memStore }

func (r *memUnitRepo) Create(u *entity.Unit) error {
	r.s.addUnit(u)
	return nil
}

func (r *memUnitRepo) GetByID(id string) (*entity.Unit, error) {
	return r.s.units[id], nil
}

func (r *memUnitRepo) ListByIDs(ids []string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, id := range ids {
		if u, ok := r.s.units[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUnitRepo) ListActive() ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.s.units {
		if u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUnitRepo) ListActiveByProduct(productID string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.s.units {
		if u.ProductID == productID && u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUnitRepo) ListByPurchaseOrder(purchaseOrderID string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.s.units {
		if u.PurchaseOrderID == purchaseOrderID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUnitRepo) UpdateCosts(id string, baseCost, dynamicCost decimal.Decimal) error {
	u := r.s.units[id]
	u.BaseCost = baseCost
	u.DynamicCost = dynamicCost
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUnitRepo) UpdateStatus(id, status string) error {
	r.s.units[id].Status = status
	return nil
}

// memExpenseRepo implementa repository.ExpenseRepository sobre el memStore.
type memExpenseRepo struct{ s *memStore }

func (r *memExpenseRepo) Create(e *entity.Expense) error {
	r.s.addExpense(e)
	return nil
}

func (r *memExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	return r.s.expenses[id], nil
}

func (r *memExpenseRepo) List(_, _ int) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.s.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (r *memExpenseRepo) ListUnconsumedProratable() ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.s.expenses {
		if e.Class() == entity.ExpenseClassShared && e.IsProratable &&
			!e.Consumed && e.Type != entity.ExpenseTypeFreight {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) SumFreightByPurchaseOrder(purchaseOrderID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.s.expenses {
		if e.Type == entity.ExpenseTypeFreight && e.PurchaseOrderID == purchaseOrderID {
			total = total.Add(e.AmountLocal())
		}
	}
	return total, nil
}

func (r *memExpenseRepo) MarkConsumed(ids []string, at time.Time) (int64, error) {
	if r.s.beforeMark != nil {
		hook := r.s.beforeMark
		r.s.beforeMark = nil
		hook(r.s)
	}
	var n int64
	for _, id := range ids {
		e, ok := r.s.expenses[id]
		if !ok || e.Consumed {
			continue
		}
		e.Consumed = true
		t := at
		e.ConsumedAt = &t
		n++
	}
	return n, nil
}

// memAggRepo implementa repository.ProductCostRepository sobre el memStore.
type memAggRepo struct{ s *memStore }

func (r *memAggRepo) Get(productID string) (*entity.ProductCostAggregate, error) {
	return r.s.aggs[productID], nil
}

func (r *memAggRepo) Upsert(agg *entity.ProductCostAggregate) error {
	r.s.aggs[agg.ProductID] = agg
	return nil
}

// memTxRunner ejecuta el callback sobre el memStore y revierte al snapshot
// previo si falla, igual que la transacción real de pgx.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	unitRepo repository.UnitRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&memUnitRepo{s: r.s}, &memExpenseRepo{s: r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}
