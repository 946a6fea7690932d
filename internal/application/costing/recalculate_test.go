package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/costing"
	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// newEngine arma el orquestador completo sobre un memStore. La tasa por
// defecto es 1 para que los montos USD y locales coincidan y los cálculos
// de los tests sean legibles a simple vista.
func newEngine(s *memStore) *appcosting.RecalculateUseCase {
	unitRepo := &memUnitRepo{s: s}
	expenseRepo := &memExpenseRepo{s: s}
	aggRepo := &memAggRepo{s: s}
	resolver := costing.NewCurrencyResolver(decimal.NewFromInt(1))
	return appcosting.NewRecalculateUseCase(
		&memTxRunner{s: s},
		unitRepo,
		expenseRepo,
		appcosting.NewFreightAllocator(unitRepo, expenseRepo),
		appcosting.NewAggregateUpdater(unitRepo, aggRepo),
		resolver,
		testLogger(),
	)
}

func activeUnit(id, productID string, purchaseUSD int64) *entity.Unit {
	cost := decimal.NewFromInt(purchaseUSD)
	return &entity.Unit{
		ID:              id,
		ProductID:       productID,
		PurchaseCostUSD: cost,
		BaseCost:        cost,
		DynamicCost:     cost,
		Status:          entity.UnitStatusAvailableDestination,
	}
}

func sharedExpense(id string, amount int64) *entity.Expense {
	return &entity.Expense{
		ID:           id,
		Category:     entity.ExpenseCategoryAdministrative,
		Amount:       decimal.NewFromInt(amount),
		IsProratable: true,
		CreatedAt:    time.Now(),
	}
}

// TestRecalculate_ProrrateoBasico cubre el ciclo feliz: dos gastos
// compartidos repartidos entre cuatro unidades activas, con conservación
// exacta (la suma de incrementos es igual al total gastado) y refresco del
// agregado por producto.
func TestRecalculate_ProrrateoBasico(t *testing.T) {
	s := newMemStore()
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		s.addUnit(activeUnit(id, "p1", 10))
	}
	s.addExpense(sharedExpense("e1", 60))
	s.addExpense(sharedExpense("e2", 40))

	res, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.UnitsUpdated)
	assert.Equal(t, 2, res.ExpensesApplied)
	assert.True(t, res.ImpactPerUnit.Equal(decimal.NewFromInt(25)),
		"impacto por unidad debe ser 100 / 4 = 25, fue %s", res.ImpactPerUnit)

	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		u := s.units[id]
		assert.True(t, u.DynamicCost.Equal(decimal.NewFromInt(35)),
			"unidad %s: costo dinámico debe ser 10 + 25, fue %s", id, u.DynamicCost)
		assert.True(t, u.BaseCost.Equal(decimal.NewFromInt(10)),
			"unidad %s: el costo base no cambia con gastos compartidos", id)
	}

	for _, id := range []string{"e1", "e2"} {
		e := s.expenses[id]
		assert.True(t, e.Consumed, "gasto %s debe quedar consumido", id)
		require.NotNil(t, e.ConsumedAt)
	}

	agg := s.aggs["p1"]
	require.NotNil(t, agg, "el agregado del producto debe refrescarse tras el commit")
	assert.True(t, agg.AverageCost.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, 4, agg.ActiveUnitCount)
}

// TestRecalculate_Idempotente un segundo ciclo sin gastos nuevos no toca
// nada: los gastos ya consumidos jamás vuelven a aplicarse.
func TestRecalculate_Idempotente(t *testing.T) {
	s := newMemStore()
	s.addUnit(activeUnit("u1", "p1", 10))
	s.addUnit(activeUnit("u2", "p1", 10))
	s.addExpense(sharedExpense("e1", 50))

	engine := newEngine(s)
	_, err := engine.Recalculate(context.Background())
	require.NoError(t, err)
	first := s.units["u1"].DynamicCost

	res, err := engine.Recalculate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.UnitsUpdated, "sin gastos calificados el ciclo es no-op")
	assert.Equal(t, 0, res.ExpensesApplied)
	assert.True(t, s.units["u1"].DynamicCost.Equal(first),
		"el costo dinámico no debe moverse en un ciclo vacío")
}

// TestRecalculate_UnidadVendidaCongelada una unidad vendida no entra al
// divisor ni recibe cuota; su costo dinámico queda congelado.
func TestRecalculate_UnidadVendidaCongelada(t *testing.T) {
	s := newMemStore()
	s.addUnit(activeUnit("u1", "p1", 10))
	s.addUnit(activeUnit("u2", "p1", 10))
	s.addUnit(activeUnit("u3", "p1", 10))
	sold := activeUnit("u4", "p1", 10)
	sold.Status = entity.UnitStatusSold
	sold.DynamicCost = decimal.NewFromInt(42)
	s.addUnit(sold)
	s.addExpense(sharedExpense("e1", 30))

	res, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.UnitsUpdated, "solo las unidades activas se actualizan")
	assert.True(t, res.ImpactPerUnit.Equal(decimal.NewFromInt(10)),
		"el divisor son las 3 activas, no las 4 existentes")
	assert.True(t, s.units["u4"].DynamicCost.Equal(decimal.NewFromInt(42)),
		"la unidad vendida conserva su costo congelado")
}

// TestRecalculate_GastoDirectoExcluido un gasto de clase direct con la
// bandera prorrateable mal puesta queda fuera del prorrateo y sin consumir.
func TestRecalculate_GastoDirectoExcluido(t *testing.T) {
	s := newMemStore()
	s.addUnit(activeUnit("u1", "p1", 10))
	s.addUnit(activeUnit("u2", "p1", 10))
	s.addExpense(sharedExpense("e1", 50))
	direct := &entity.Expense{
		ID:           "e2",
		Category:     entity.ExpenseCategorySale,
		Amount:       decimal.NewFromInt(999),
		IsProratable: true, // bandera errónea: la clase manda
		SaleID:       "s1",
		CreatedAt:    time.Now(),
	}
	s.addExpense(direct)

	res, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExpensesApplied)
	assert.True(t, res.ImpactPerUnit.Equal(decimal.NewFromInt(25)),
		"solo el gasto compartido entra: 50 / 2")
	assert.False(t, s.expenses["e2"].Consumed,
		"el gasto directo no debe consumirse")
}

// TestRecalculate_SinUnidadesActivas con gastos pendientes pero cero
// unidades activas el ciclo aborta sin efectos: nada se marca consumido.
func TestRecalculate_SinUnidadesActivas(t *testing.T) {
	s := newMemStore()
	sold := activeUnit("u1", "p1", 10)
	sold.Status = entity.UnitStatusSold
	s.addUnit(sold)
	s.addExpense(sharedExpense("e1", 100))

	res, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.UnitsUpdated)
	assert.Equal(t, 0, res.ExpensesApplied)
	assert.False(t, s.expenses["e1"].Consumed,
		"el gasto queda intacto para el próximo ciclo con unidades activas")
}

// TestRecalculate_Monotonico el costo dinámico solo crece a través de
// ciclos sucesivos con gastos nuevos.
func TestRecalculate_Monotonico(t *testing.T) {
	s := newMemStore()
	s.addUnit(activeUnit("u1", "p1", 10))
	s.addUnit(activeUnit("u2", "p1", 10))

	engine := newEngine(s)
	prev := s.units["u1"].DynamicCost
	for i, amount := range []int64{20, 30, 10} {
		s.addExpense(sharedExpense(string(rune('a'+i)), amount))
		_, err := engine.Recalculate(context.Background())
		require.NoError(t, err)
		curr := s.units["u1"].DynamicCost
		assert.True(t, curr.GreaterThan(prev),
			"ciclo %d: el costo dinámico debe crecer (%s -> %s)", i, prev, curr)
		prev = curr
	}
	// 10 base + (20+30+10)/2 acumulado
	assert.True(t, prev.Equal(decimal.NewFromInt(40)))
}

// TestRecalculate_GuardaConcurrente si otro proceso consumió parte del
// conjunto leído, el lote aborta completo: ni unidades actualizadas ni
// gastos marcados por este ciclo.
func TestRecalculate_GuardaConcurrente(t *testing.T) {
	s := newMemStore()
	s.addUnit(activeUnit("u1", "p1", 10))
	s.addExpense(sharedExpense("e1", 50))
	s.addExpense(sharedExpense("e2", 50))

	// Simula un recálculo rival que consume e1 entre la lectura y el commit.
	s.beforeMark = func(st *memStore) {
		st.expenses["e1"].Consumed = true
	}

	_, err := newEngine(s).Recalculate(context.Background())
	require.ErrorIs(t, err, domain.ErrExpenseConsumed)

	assert.True(t, s.units["u1"].DynamicCost.Equal(decimal.NewFromInt(10)),
		"el rollback debe dejar la unidad con su costo previo")
	assert.False(t, s.expenses["e2"].Consumed,
		"ningún gasto de este lote debe quedar marcado tras el aborto")
}

// TestRecalculate_FleteProrrateadoPorOrden el flete de una orden se divide
// entre TODAS sus unidades (incluidas vendidas) y entra al costo base; el
// gasto de flete nunca se consume por el prorrateo general.
func TestRecalculate_FleteProrrateadoPorOrden(t *testing.T) {
	s := newMemStore()
	u1 := activeUnit("u1", "p1", 10)
	u1.PurchaseOrderID = "po1"
	s.addUnit(u1)
	u2 := activeUnit("u2", "p1", 10)
	u2.PurchaseOrderID = "po1"
	u2.Status = entity.UnitStatusSold
	s.addUnit(u2)

	s.addExpense(&entity.Expense{
		ID:              "f1",
		Category:        entity.ExpenseCategoryOperational,
		Type:            entity.ExpenseTypeFreight,
		Amount:          decimal.NewFromInt(20),
		PurchaseOrderID: "po1",
		CreatedAt:       time.Now(),
	})
	s.addExpense(sharedExpense("e1", 5))

	res, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExpensesApplied, "solo el gasto compartido se consume")
	assert.False(t, s.expenses["f1"].Consumed, "el flete se reparte por orden, no se consume")

	u := s.units["u1"]
	// base = 10 compra + 20/2 flete; dinámico = base + 5/1 compartido
	assert.True(t, u.BaseCost.Equal(decimal.NewFromInt(20)),
		"costo base debe incluir el flete por unidad de la orden, fue %s", u.BaseCost)
	assert.True(t, u.DynamicCost.Equal(decimal.NewFromInt(25)),
		"costo dinámico debe ser base + cuota compartida, fue %s", u.DynamicCost)
	assert.True(t, s.units["u2"].DynamicCost.Equal(decimal.NewFromInt(10)),
		"la unidad vendida no se toca aunque su orden tenga flete")
}

// TestRecalculate_UnidadManualUsaSuFlete una unidad sin orden de compra usa
// su propio flete convertido en vez del prorrateo por orden.
func TestRecalculate_UnidadManualUsaSuFlete(t *testing.T) {
	s := newMemStore()
	u := activeUnit("u1", "p1", 10)
	u.FreightCostUSD = decimal.NewFromInt(5)
	s.addUnit(u)
	s.addExpense(sharedExpense("e1", 7))

	_, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	// base = 10 + 5 flete propio; dinámico = base + 7
	assert.True(t, s.units["u1"].BaseCost.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.units["u1"].DynamicCost.Equal(decimal.NewFromInt(22)))
}

// TestRecalculate_ConservacionExacta la suma de incrementos de costo
// dinámico es exactamente el total de gastos aplicados.
func TestRecalculate_ConservacionExacta(t *testing.T) {
	s := newMemStore()
	for _, id := range []string{"u1", "u2", "u3"} {
		s.addUnit(activeUnit(id, "p1", 10))
	}
	s.addExpense(sharedExpense("e1", 300))

	before := decimal.Zero
	for _, u := range s.units {
		before = before.Add(u.DynamicCost)
	}

	_, err := newEngine(s).Recalculate(context.Background())
	require.NoError(t, err)

	after := decimal.Zero
	for _, u := range s.units {
		after = after.Add(u.DynamicCost)
	}
	assert.True(t, after.Sub(before).Equal(decimal.NewFromInt(300)),
		"la suma de incrementos debe igualar el gasto total, fue %s", after.Sub(before))
}
