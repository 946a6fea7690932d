package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para unidades físicas.
// El motor de recálculo solo escribe los campos de costo denormalizados;
// las transiciones de estado pertenecen a los flujos externos (venta,
// vencimiento, daño) vía UpdateStatus.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	ListByIDs(ids []string) ([]*entity.Unit, error)
	// ListActive devuelve las unidades en estado received_origin,
	// available_destination o reserved.
	ListActive() ([]*entity.Unit, error)
	ListActiveByProduct(productID string) ([]*entity.Unit, error)
	// ListByPurchaseOrder devuelve todas las unidades originadas en la orden,
	// sin importar estado (el flete se pagó una sola vez por todas).
	ListByPurchaseOrder(purchaseOrderID string) ([]*entity.Unit, error)
	// UpdateCosts escribe los campos denormalizados de costo (propiedad
	// exclusiva del motor). Se usa dentro de la transacción del recálculo.
	UpdateCosts(id string, baseCost, dynamicCost decimal.Decimal) error
	UpdateStatus(id, status string) error
}
