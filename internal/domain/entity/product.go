package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una referencia del catálogo. El costo por producto no
// vive aquí: se deriva de sus unidades (ver ProductCostAggregate).
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	BrandID     string
	SupplierID  string
	Price       decimal.Decimal // precio de venta sugerido
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
