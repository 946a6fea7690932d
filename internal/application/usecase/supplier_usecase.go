package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// SupplierUseCase CRUD del registro de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create persiste un proveedor nuevo.
func (uc *SupplierUseCase) Create(_ context.Context, s *entity.Supplier) (*entity.Supplier, error) {
	if s.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	s.ID = uuid.New().String()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID devuelve un proveedor por id.
func (uc *SupplierUseCase) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista proveedores paginados.
func (uc *SupplierUseCase) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.repo.List(limit, offset)
}

// Update actualiza los datos de contacto de un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in *entity.Supplier) (*entity.Supplier, error) {
	s, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.TaxID != "" {
		s.TaxID = in.TaxID
	}
	s.Email = in.Email
	s.Phone = in.Phone
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return s, nil
}
