package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// CreateProductRequest entrada de creación/actualización de producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BrandID     string          `json:"brand_id"`
	SupplierID  string          `json:"supplier_id"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BrandID     string    `json:"brand_id,omitempty"`
	SupplierID  string    `json:"supplier_id,omitempty"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProductResponse mapea un producto.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		SupplierID:  p.SupplierID,
		Price:       p.Price.Round(2).String(),
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductResponses mapea un listado.
func NewProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
