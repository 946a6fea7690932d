package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// BaseCost calcula el costo base aterrizado de una unidad en moneda local:
// costo de compra convertido más el flete asignado a la unidad (ya en moneda
// local). Función pura y determinista; el valor denormalizado en la unidad es
// un caché de este resultado, que el sistema siempre recalcula en vez de
// parchear para evitar deriva.
func BaseCost(r CurrencyResolver, u *entity.Unit, freightPerUnit decimal.Decimal) decimal.Decimal {
	return r.ToLocal(u.PurchaseCostUSD, u).Add(freightPerUnit)
}
