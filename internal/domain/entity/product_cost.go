package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCostAggregate resumen derivado del costo dinámico de las unidades
// activas de un producto. Es un caché de reportería: se recalcula después de
// cada recálculo de costos y puede quedar desactualizado entre recálculos.
// Nunca debe alimentar un cálculo sensible a corrección (margen, prorrateo);
// esos leen siempre las unidades vivas.
type ProductCostAggregate struct {
	ProductID       string
	AverageCost     decimal.Decimal
	MinCost         decimal.Decimal
	MaxCost         decimal.Decimal
	ActiveUnitCount int
	RefreshedAt     time.Time
}
