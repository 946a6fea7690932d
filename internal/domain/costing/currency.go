package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// CurrencyResolver resuelve la tasa de cambio efectiva de una unidad
// (servicio de dominio, sin I/O).
//
// Cadena de resolución: tasa de pago si existe, si no tasa de compra, si no
// la tasa por defecto configurada. No hay camino de error: una tasa ausente
// siempre cae al siguiente eslabón, porque las unidades históricas anteceden
// la captura estricta de datos.
type CurrencyResolver struct {
	defaultRate decimal.Decimal
}

// NewCurrencyResolver construye el resolver con la tasa de respaldo.
// La validez de defaultRate (> 0) se verifica al arranque en la configuración.
func NewCurrencyResolver(defaultRate decimal.Decimal) CurrencyResolver {
	return CurrencyResolver{defaultRate: defaultRate}
}

// EffectiveRate devuelve la tasa aplicable a la unidad.
func (r CurrencyResolver) EffectiveRate(u *entity.Unit) decimal.Decimal {
	if u.PaymentRate != nil && u.PaymentRate.GreaterThan(decimal.Zero) {
		return *u.PaymentRate
	}
	if u.PurchaseRate != nil && u.PurchaseRate.GreaterThan(decimal.Zero) {
		return *u.PurchaseRate
	}
	return r.defaultRate
}

// ToLocal convierte un monto USD a moneda local con la tasa efectiva de la unidad.
func (r CurrencyResolver) ToLocal(usd decimal.Decimal, u *entity.Unit) decimal.Decimal {
	return usd.Mul(r.EffectiveRate(u))
}
