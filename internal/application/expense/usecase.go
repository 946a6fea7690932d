package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
	"github.com/jhoicas/costos-api/pkg/logger"
)

// Recalculator abstrae el orquestador de recálculo para el disparo
// automático tras crear un gasto calificado.
type Recalculator interface {
	Recalculate(ctx context.Context) (*costing.RecalculationResult, error)
}

// UseCase registra gastos y dispara el recálculo cuando el gasto creado es
// compartido y prorrateable. El modo de disparo (síncrono o en segundo
// plano) es una decisión de despliegue; la garantía de commit atómico del
// orquestador no depende del modo.
type UseCase struct {
	expenseRepo repository.ExpenseRepository
	recalc      Recalculator
	async       bool
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. Con async=true el recálculo corre en
// una goroutine y el caller no espera el resultado.
func NewUseCase(expenseRepo repository.ExpenseRepository, recalc Recalculator, async bool, log *logger.Logger) *UseCase {
	return &UseCase{expenseRepo: expenseRepo, recalc: recalc, async: async, log: log}
}

// CreateInput entrada para registrar un gasto.
// IsProratable nil toma el valor por defecto de la categoría (clase shared
// => true, salvo flete); los gastos de clase direct exigen SaleID y los de
// tipo freight exigen PurchaseOrderID.
type CreateInput struct {
	Category        string
	Type            string
	Description     string
	Amount          decimal.Decimal
	Currency        string
	ExchangeRate    *decimal.Decimal
	IsProratable    *bool
	SaleID          string
	PurchaseOrderID string
}

// Create valida, persiste y, si el gasto califica, dispara el recálculo.
// Devuelve el resultado del recálculo cuando corre en modo síncrono; nil en
// modo asíncrono o cuando el gasto no califica.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Expense, *costing.RecalculationResult, error) {
	class := entity.ExpenseClassFor(in.Category)
	if class == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Type != "" && in.Type != entity.ExpenseTypeFreight {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Type == entity.ExpenseTypeFreight {
		if class != entity.ExpenseClassShared || in.PurchaseOrderID == "" {
			return nil, nil, domain.ErrInvalidInput
		}
	}
	if class == entity.ExpenseClassDirect && in.SaleID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	proratable := class == entity.ExpenseClassShared && in.Type != entity.ExpenseTypeFreight
	if in.IsProratable != nil {
		proratable = *in.IsProratable
	}

	exp := &entity.Expense{
		ID:              uuid.New().String(),
		Category:        in.Category,
		Type:            in.Type,
		Description:     in.Description,
		Amount:          in.Amount,
		Currency:        in.Currency,
		ExchangeRate:    in.ExchangeRate,
		IsProratable:    proratable,
		SaleID:          in.SaleID,
		PurchaseOrderID: in.PurchaseOrderID,
		CreatedAt:       time.Now(),
	}
	if err := uc.expenseRepo.Create(exp); err != nil {
		return nil, nil, err
	}

	if !exp.Proratable() {
		return exp, nil, nil
	}

	if uc.async {
		go func() {
			// El request pudo haber terminado; contexto propio con tope.
			bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := uc.recalc.Recalculate(bgCtx); err != nil {
				uc.log.Error().Err(err).Str("expense_id", exp.ID).Msg("recálculo en segundo plano falló")
			}
		}()
		return exp, nil, nil
	}

	res, err := uc.recalc.Recalculate(ctx)
	if err != nil {
		// El gasto quedó registrado y sin consumir; el próximo ciclo lo
		// recoge. Se informa al caller sin deshacer la creación.
		uc.log.Error().Err(err).Str("expense_id", exp.ID).Msg("recálculo tras crear gasto falló")
		return exp, nil, err
	}
	return exp, res, nil
}

// List devuelve gastos paginados.
func (uc *UseCase) List(_ context.Context, limit, offset int) ([]*entity.Expense, error) {
	return uc.expenseRepo.List(limit, offset)
}

// GetByID devuelve un gasto por id.
func (uc *UseCase) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	return exp, nil
}
