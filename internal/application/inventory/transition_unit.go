package inventory

import (
	"context"

	"github.com/jhoicas/costos-api/internal/domain"
	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// TransitionUnitUseCase aplica transiciones de ciclo de vida a una unidad
// (venta, reserva, vencimiento, daño). Pertenece a los flujos externos al
// motor de costos: el motor lee estados pero jamás los cambia.
type TransitionUnitUseCase struct {
	unitRepo repository.UnitRepository
}

// NewTransitionUnitUseCase construye el caso de uso.
func NewTransitionUnitUseCase(unitRepo repository.UnitRepository) *TransitionUnitUseCase {
	return &TransitionUnitUseCase{unitRepo: unitRepo}
}

// Transition mueve la unidad al estado destino. Las unidades nunca se
// eliminan, solo transicionan; un estado terminal congela la unidad y su
// costo dinámico para siempre.
func (uc *TransitionUnitUseCase) Transition(_ context.Context, unitID, newStatus string) (*entity.Unit, error) {
	if !entity.IsActiveUnitStatus(newStatus) && !entity.IsTerminalUnitStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if entity.IsTerminalUnitStatus(unit.Status) {
		return nil, domain.ErrInvalidTransition
	}
	if unit.Status == newStatus {
		return unit, nil
	}
	if err := uc.unitRepo.UpdateStatus(unitID, newStatus); err != nil {
		return nil, err
	}
	unit.Status = newStatus
	return unit, nil
}

// GetByID devuelve una unidad por id.
func (uc *TransitionUnitUseCase) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return unit, nil
}
