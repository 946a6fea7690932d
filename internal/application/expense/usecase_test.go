package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/application/expense"
	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/pkg/logger"
)

type stubExpenseRepo struct {
	created []*entity.Expense
}

func (r *stubExpenseRepo) Create(e *entity.Expense) error {
	r.created = append(r.created, e)
	return nil
}
func (r *stubExpenseRepo) GetByID(string) (*entity.Expense, error)          { return nil, nil }
func (r *stubExpenseRepo) List(_, _ int) ([]*entity.Expense, error)         { return nil, nil }
func (r *stubExpenseRepo) ListUnconsumedProratable() ([]*entity.Expense, error) { return nil, nil }
func (r *stubExpenseRepo) SumFreightByPurchaseOrder(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubExpenseRepo) MarkConsumed([]string, time.Time) (int64, error) { return 0, nil }

// stubRecalculator registra cada invocación; notified permite esperar el
// disparo en segundo plano.
type stubRecalculator struct {
	calls    int
	err      error
	notified chan struct{}
}

func (s *stubRecalculator) Recalculate(context.Context) (*appcosting.RecalculationResult, error) {
	s.calls++
	if s.notified != nil {
		close(s.notified)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &appcosting.RecalculationResult{UnitsUpdated: 2, ExpensesApplied: 1, ImpactPerUnit: decimal.NewFromInt(5)}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func newUC(repo *stubExpenseRepo, recalc *stubRecalculator, async bool) *expense.UseCase {
	return expense.NewUseCase(repo, recalc, async, testLogger())
}

func validShared() expense.CreateInput {
	return expense.CreateInput{
		Category: entity.ExpenseCategoryAdministrative,
		Amount:   decimal.NewFromInt(100),
	}
}

func TestCreate_Validaciones(t *testing.T) {
	tests := []struct {
		name string
		in   expense.CreateInput
	}{
		{"categoría inexistente", expense.CreateInput{Category: "marketing", Amount: decimal.NewFromInt(10)}},
		{"monto cero", expense.CreateInput{Category: entity.ExpenseCategoryOperational}},
		{"monto negativo", expense.CreateInput{Category: entity.ExpenseCategoryOperational, Amount: decimal.NewFromInt(-5)}},
		{"tipo desconocido", expense.CreateInput{Category: entity.ExpenseCategoryOperational, Amount: decimal.NewFromInt(10), Type: "propina"}},
		{"flete sin orden de compra", expense.CreateInput{Category: entity.ExpenseCategoryOperational, Amount: decimal.NewFromInt(10), Type: entity.ExpenseTypeFreight}},
		{"flete con categoría directa", expense.CreateInput{Category: entity.ExpenseCategorySale, Amount: decimal.NewFromInt(10), Type: entity.ExpenseTypeFreight, PurchaseOrderID: "po1", SaleID: "s1"}},
		{"gasto directo sin venta", expense.CreateInput{Category: entity.ExpenseCategoryDistribution, Amount: decimal.NewFromInt(10)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubExpenseRepo{}
			_, _, err := newUC(repo, &stubRecalculator{}, false).Create(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, repo.created, "nada debe persistirse ante entrada inválida")
		})
	}
}

func TestCreate_CompartidoDisparaRecalculo(t *testing.T) {
	repo := &stubExpenseRepo{}
	recalc := &stubRecalculator{}

	exp, res, err := newUC(repo, recalc, false).Create(context.Background(), validShared())
	require.NoError(t, err)

	assert.True(t, exp.IsProratable, "compartido no-flete es prorrateable por defecto")
	assert.Equal(t, 1, recalc.calls)
	require.NotNil(t, res, "en modo síncrono el caller recibe el resultado")
	assert.Equal(t, 2, res.UnitsUpdated)
	require.Len(t, repo.created, 1)
	assert.NotEmpty(t, repo.created[0].ID)
}

func TestCreate_BanderaApagadaNoDispara(t *testing.T) {
	recalc := &stubRecalculator{}
	off := false
	in := validShared()
	in.IsProratable = &off

	exp, res, err := newUC(&stubExpenseRepo{}, recalc, false).Create(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, exp.IsProratable)
	assert.Nil(t, res)
	assert.Equal(t, 0, recalc.calls, "un gasto excluido a mano no toca el motor")
}

func TestCreate_FleteNoDisparaProrrateo(t *testing.T) {
	recalc := &stubRecalculator{}
	in := expense.CreateInput{
		Category:        entity.ExpenseCategoryOperational,
		Type:            entity.ExpenseTypeFreight,
		Amount:          decimal.NewFromInt(50),
		PurchaseOrderID: "po1",
	}
	exp, res, err := newUC(&stubExpenseRepo{}, recalc, false).Create(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, exp.IsProratable, "el flete se reparte por orden, no por prorrateo general")
	assert.Nil(t, res)
	assert.Equal(t, 0, recalc.calls)
}

func TestCreate_DirectoNoDispara(t *testing.T) {
	recalc := &stubRecalculator{}
	in := expense.CreateInput{
		Category: entity.ExpenseCategorySale,
		Amount:   decimal.NewFromInt(50),
		SaleID:   "s1",
	}
	_, res, err := newUC(&stubExpenseRepo{}, recalc, false).Create(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 0, recalc.calls)
}

// TestCreate_RecalculoFallidoConservaElGasto el gasto queda registrado y sin
// consumir aunque el recálculo síncrono falle; el barrido lo recoge después.
func TestCreate_RecalculoFallidoConservaElGasto(t *testing.T) {
	repo := &stubExpenseRepo{}
	recalc := &stubRecalculator{err: errors.New("bd caída")}

	exp, res, err := newUC(repo, recalc, false).Create(context.Background(), validShared())
	require.Error(t, err)
	require.NotNil(t, exp, "el gasto creado se devuelve junto al error")
	assert.Nil(t, res)
	assert.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].Consumed)
}

func TestCreate_ModoAsincrono(t *testing.T) {
	recalc := &stubRecalculator{notified: make(chan struct{})}

	exp, res, err := newUC(&stubExpenseRepo{}, recalc, true).Create(context.Background(), validShared())
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Nil(t, res, "en modo asíncrono el caller no espera el resultado")

	select {
	case <-recalc.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("el recálculo en segundo plano nunca se disparó")
	}
}
