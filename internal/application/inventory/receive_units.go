package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/costing"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// ReceiveUnitsUseCase crea unidades físicas al recibir inventario. Las
// unidades nacen en received_origin con costo base y dinámico iguales; el
// flete por orden y los gastos compartidos los incorpora después el motor
// de recálculo.
type ReceiveUnitsUseCase struct {
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
	resolver    costing.CurrencyResolver
}

// NewReceiveUnitsUseCase construye el caso de uso.
func NewReceiveUnitsUseCase(
	unitRepo repository.UnitRepository,
	productRepo repository.ProductRepository,
	resolver costing.CurrencyResolver,
) *ReceiveUnitsUseCase {
	return &ReceiveUnitsUseCase{unitRepo: unitRepo, productRepo: productRepo, resolver: resolver}
}

// ReceiveInput entrada para recibir unidades de una compra.
// PurchaseOrderID vacío = ajuste manual (la unidad usa su propio flete).
type ReceiveInput struct {
	ProductID       string
	PurchaseOrderID string
	Count           int
	PurchaseCostUSD decimal.Decimal
	FreightCostUSD  decimal.Decimal
	PurchaseRate    *decimal.Decimal
	PaymentRate     *decimal.Decimal
}

// Receive valida y crea Count unidades idénticas.
func (uc *ReceiveUnitsUseCase) Receive(_ context.Context, in ReceiveInput) ([]*entity.Unit, error) {
	if in.ProductID == "" || in.Count <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseCostUSD.IsNegative() || in.FreightCostUSD.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	units := make([]*entity.Unit, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		u := &entity.Unit{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			PurchaseOrderID: in.PurchaseOrderID,
			PurchaseCostUSD: in.PurchaseCostUSD,
			FreightCostUSD:  in.FreightCostUSD,
			PurchaseRate:    in.PurchaseRate,
			PaymentRate:     in.PaymentRate,
			Status:          entity.UnitStatusReceivedOrigin,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		// Costo inicial: compra + flete propio convertidos. El recálculo
		// posterior lo refina con el flete prorrateado por orden.
		base := costing.BaseCost(uc.resolver, u, uc.resolver.ToLocal(u.FreightCostUSD, u))
		u.BaseCost = base
		u.DynamicCost = base
		if err := uc.unitRepo.Create(u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
