package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de una unidad física de inventario.
// Solo los estados activos participan en el prorrateo de gastos compartidos;
// los terminales quedan congelados con su último costo dinámico.
const (
	UnitStatusReceivedOrigin       = "received_origin"
	UnitStatusAvailableDestination = "available_destination"
	UnitStatusReserved             = "reserved"
	UnitStatusSold                 = "sold"
	UnitStatusExpired              = "expired"
	UnitStatusDamaged              = "damaged"
)

// ActiveUnitStatuses estados que contribuyen al prorrateo (en orden de flujo).
var ActiveUnitStatuses = []string{
	UnitStatusReceivedOrigin,
	UnitStatusAvailableDestination,
	UnitStatusReserved,
}

// IsActiveUnitStatus indica si el estado participa en agregación y prorrateo.
func IsActiveUnitStatus(status string) bool {
	switch status {
	case UnitStatusReceivedOrigin, UnitStatusAvailableDestination, UnitStatusReserved:
		return true
	}
	return false
}

// IsTerminalUnitStatus indica si el estado congela el costo dinámico.
func IsTerminalUnitStatus(status string) bool {
	switch status {
	case UnitStatusSold, UnitStatusExpired, UnitStatusDamaged:
		return true
	}
	return false
}

// Unit representa un ítem físico rastreable individualmente.
// PurchaseOrderID es opcional (vacío = unidad ajustada manualmente, usa su
// propio FreightCostUSD en vez del flete prorrateado por orden).
// BaseCost y DynamicCost están denormalizados en moneda local para lecturas
// rápidas; solo el motor de recálculo escribe DynamicCost.
// Invariante: DynamicCost >= BaseCost (el impacto por unidad nunca es negativo).
type Unit struct {
	ID              string
	ProductID       string
	PurchaseOrderID string
	PurchaseCostUSD decimal.Decimal
	FreightCostUSD  decimal.Decimal
	PurchaseRate    *decimal.Decimal // tasa al momento de compra (puede faltar en unidades históricas)
	PaymentRate     *decimal.Decimal // tasa al momento de pago; si existe, prevalece sobre PurchaseRate
	BaseCost        decimal.Decimal  // costo base aterrizado (moneda local)
	DynamicCost     decimal.Decimal  // CTRU: base + cuota de gastos prorrateados (moneda local)
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive indica si la unidad participa en el prorrateo actual.
func (u *Unit) IsActive() bool { return IsActiveUnitStatus(u.Status) }
