package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos (plomería de consola).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProductInput entrada de creación.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	BrandID     string
	SupplierID  string
	Price       decimal.Decimal
}

// Create valida unicidad de SKU y persiste el producto.
func (uc *ProductUseCase) Create(_ context.Context, in CreateProductInput) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		BrandID:     in.BrandID,
		SupplierID:  in.SupplierID,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto por id.
func (uc *ProductUseCase) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.repo.List(limit, offset)
}

// Update actualiza nombre, descripción y precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in CreateProductInput) (*entity.Product, error) {
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	p.Description = in.Description
	if !in.Price.IsZero() {
		p.Price = in.Price
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}
