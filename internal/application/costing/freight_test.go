package costing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/domain/entity"
)

func newAllocator(s *memStore) *appcosting.FreightAllocator {
	return appcosting.NewFreightAllocator(&memUnitRepo{s: s}, &memExpenseRepo{s: s})
}

func freightExpense(id, orderID string, amount int64) *entity.Expense {
	return &entity.Expense{
		ID:              id,
		Category:        entity.ExpenseCategoryOperational,
		Type:            entity.ExpenseTypeFreight,
		Amount:          decimal.NewFromInt(amount),
		PurchaseOrderID: orderID,
		CreatedAt:       time.Now(),
	}
}

func TestFreightAllocator_DivisionPareja(t *testing.T) {
	s := newMemStore()
	for i, id := range []string{"u1", "u2", "u3", "u4"} {
		u := activeUnit(id, "p1", 10)
		u.PurchaseOrderID = "po1"
		if i == 0 {
			// una vendida: el flete se pagó por el embarque completo
			u.Status = entity.UnitStatusSold
		}
		s.addUnit(u)
	}
	s.addExpense(freightExpense("f1", "po1", 60))
	s.addExpense(freightExpense("f2", "po1", 40))

	perUnit, err := newAllocator(s).PerUnit("po1")
	require.NoError(t, err)
	assert.True(t, perUnit.Equal(decimal.NewFromInt(25)),
		"100 de flete entre las 4 unidades de la orden, vendidas incluidas; fue %s", perUnit)
}

func TestFreightAllocator_OrdenVacia(t *testing.T) {
	s := newMemStore()
	perUnit, err := newAllocator(s).PerUnit("")
	require.NoError(t, err)
	assert.True(t, perUnit.IsZero())
}

func TestFreightAllocator_SinGastosDeFlete(t *testing.T) {
	s := newMemStore()
	u := activeUnit("u1", "p1", 10)
	u.PurchaseOrderID = "po1"
	s.addUnit(u)

	perUnit, err := newAllocator(s).PerUnit("po1")
	require.NoError(t, err)
	assert.True(t, perUnit.IsZero(), "orden sin flete contabilizado aporta cero")
}

func TestFreightAllocator_ReferenciaColgante(t *testing.T) {
	s := newMemStore()
	s.addExpense(freightExpense("f1", "po-fantasma", 100))

	perUnit, err := newAllocator(s).PerUnit("po-fantasma")
	require.NoError(t, err)
	assert.True(t, perUnit.IsZero(),
		"flete sin unidades vinculadas no es error, la asignación debe ser total")
}
