package costing

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/costing"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
	"github.com/jhoicas/costos-api/pkg/logger"
)

// RecalculationResult contrato de retorno del recálculo, en todos los casos.
// Un no-op exitoso y un fallo devuelven ambos cero unidades; se distinguen
// por el error.
type RecalculationResult struct {
	UnitsUpdated    int
	ExpensesApplied int
	ImpactPerUnit   decimal.Decimal
}

// RecalculateUseCase orquesta el recálculo del CTRU:
// lee unidades activas y gastos calificados no consumidos, calcula el
// impacto por unidad, escribe en un solo lote atómico el nuevo costo
// dinámico de cada unidad activa y la bandera consumed de cada gasto, y
// dispara el refresco de agregados por producto.
//
// Serialización: un mutex impide que dos invocaciones dentro del proceso
// lean el mismo conjunto de gastos no consumidos; la guarda condicional de
// MarkConsumed (consumed = false) cierra la carrera entre procesos haciendo
// abortar la transacción del perdedor. Reintentar siempre es seguro: nada
// queda marcado si el lote no confirma.
type RecalculateUseCase struct {
	mu          sync.Mutex
	txRunner    TxRunner
	unitRepo    repository.UnitRepository
	expenseRepo repository.ExpenseRepository
	freight     *FreightAllocator
	aggregates  *AggregateUpdater
	resolver    costing.CurrencyResolver
	log         *logger.Logger
}

// NewRecalculateUseCase construye el orquestador.
func NewRecalculateUseCase(
	txRunner TxRunner,
	unitRepo repository.UnitRepository,
	expenseRepo repository.ExpenseRepository,
	freight *FreightAllocator,
	aggregates *AggregateUpdater,
	resolver costing.CurrencyResolver,
	log *logger.Logger,
) *RecalculateUseCase {
	return &RecalculateUseCase{
		txRunner:    txRunner,
		unitRepo:    unitRepo,
		expenseRepo: expenseRepo,
		freight:     freight,
		aggregates:  aggregates,
		resolver:    resolver,
		log:         log,
	}
}

// unitUpdate costos recalculados de una unidad, pendientes de escritura.
type unitUpdate struct {
	unit        *entity.Unit
	baseCost    decimal.Decimal
	dynamicCost decimal.Decimal
}

// Recalculate ejecuta un ciclo completo: Idle → Computing → Committing → Idle,
// o Computing → Aborted cuando no hay trabajo calificado. Los errores de I/O
// del almacén se propagan sin reintentos; el caller decide reintentar.
func (uc *RecalculateUseCase) Recalculate(ctx context.Context) (*RecalculationResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	zero := &RecalculationResult{ImpactPerUnit: decimal.Zero}

	// Computing: lectura estricta y secuencial de gastos y unidades.
	expenses, err := uc.expenseRepo.ListUnconsumedProratable()
	if err != nil {
		return zero, err
	}
	units, err := uc.unitRepo.ListActive()
	if err != nil {
		return zero, err
	}

	impact := costing.ComputeImpact(expenses, len(units))
	if len(impact.ExpenseIDs) == 0 {
		// Aborted: sin gastos calificados o sin unidades activas. Nada se
		// marca consumido; los gastos quedan intactos para el próximo ciclo.
		uc.log.Debug().
			Int("gastos_pendientes", len(expenses)).
			Int("unidades_activas", len(units)).
			Msg("recálculo sin trabajo calificado")
		return zero, nil
	}

	updates, err := uc.prepareUpdates(units, impact.PerUnit)
	if err != nil {
		return zero, err
	}

	// Committing: un solo lote atómico. Aplicación parcial duplicaría gastos
	// (consumidos sin actualizar unidades) o los perdería (unidades
	// actualizadas sin marcar banderas); ambas están prohibidas por diseño.
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		for _, up := range updates {
			if err := unitRepo.UpdateCosts(up.unit.ID, up.baseCost, up.dynamicCost); err != nil {
				return err
			}
		}
		n, err := expenseRepo.MarkConsumed(impact.ExpenseIDs, now)
		if err != nil {
			return err
		}
		if n != int64(len(impact.ExpenseIDs)) {
			// Otro recálculo consumió parte del conjunto leído: abortar y
			// dejar que el caller reintente sobre el estado fresco.
			return domain.ErrExpenseConsumed
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	// Refresco de agregados: caché best-effort, un fallo se registra y no
	// revierte el commit de unidades/gastos.
	for _, productID := range distinctProducts(units) {
		if err := uc.aggregates.RefreshProduct(productID); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", productID).
				Msg("refresco de agregado de costos falló")
		}
	}

	res := &RecalculationResult{
		UnitsUpdated:    len(updates),
		ExpensesApplied: len(impact.ExpenseIDs),
		ImpactPerUnit:   impact.PerUnit,
	}
	uc.log.Info().
		Int("unidades", res.UnitsUpdated).
		Int("gastos", res.ExpensesApplied).
		Str("impacto_por_unidad", res.ImpactPerUnit.String()).
		Msg("recálculo CTRU confirmado")
	return res, nil
}

// prepareUpdates recalcula el costo base de cada unidad activa (con caché de
// flete por orden) y le suma la cuota acumulada previa más el impacto nuevo.
// El costo base se recalcula siempre en vez de parchearse; la porción
// acumulada de gastos (DynamicCost - BaseCost previos) se conserva para que
// el costo dinámico nunca retroceda.
func (uc *RecalculateUseCase) prepareUpdates(units []*entity.Unit, perUnit decimal.Decimal) ([]unitUpdate, error) {
	freightByOrder := make(map[string]decimal.Decimal)
	updates := make([]unitUpdate, 0, len(units))
	for _, u := range units {
		freight, err := uc.freightPerUnit(u, freightByOrder)
		if err != nil {
			return nil, err
		}
		base := costing.BaseCost(uc.resolver, u, freight)
		accumulated := u.DynamicCost.Sub(u.BaseCost)
		if accumulated.IsNegative() {
			accumulated = decimal.Zero
		}
		updates = append(updates, unitUpdate{
			unit:        u,
			baseCost:    base,
			dynamicCost: base.Add(accumulated).Add(perUnit),
		})
	}
	return updates, nil
}

// freightPerUnit resuelve el flete local de la unidad: prorrateado por orden
// de compra si existe vínculo, o su propio flete USD convertido si fue
// ajustada manualmente.
func (uc *RecalculateUseCase) freightPerUnit(u *entity.Unit, cache map[string]decimal.Decimal) (decimal.Decimal, error) {
	if u.PurchaseOrderID == "" {
		return uc.resolver.ToLocal(u.FreightCostUSD, u), nil
	}
	if f, ok := cache[u.PurchaseOrderID]; ok {
		return f, nil
	}
	f, err := uc.freight.PerUnit(u.PurchaseOrderID)
	if err != nil {
		return decimal.Zero, err
	}
	cache[u.PurchaseOrderID] = f
	return f, nil
}

func distinctProducts(units []*entity.Unit) []string {
	seen := make(map[string]struct{}, len(units))
	var ids []string
	for _, u := range units {
		if _, ok := seen[u.ProductID]; !ok {
			seen[u.ProductID] = struct{}{}
			ids = append(ids, u.ProductID)
		}
	}
	return ids
}
