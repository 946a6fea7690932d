package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costos-api/internal/application/dto"
	"github.com/jhoicas/costos-api/internal/application/inventory"
	"github.com/jhoicas/costos-api/internal/domain"
)

// UnitHandler maneja las peticiones HTTP de unidades físicas.
type UnitHandler struct {
	receive    *inventory.ReceiveUnitsUseCase
	transition *inventory.TransitionUnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(receive *inventory.ReceiveUnitsUseCase, transition *inventory.TransitionUnitUseCase) *UnitHandler {
	return &UnitHandler{receive: receive, transition: transition}
}

// Receive godoc
// @Summary      Recibir unidades de una compra
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveUnitsRequest  true  "product_id, count, purchase_cost_usd, tasas, purchase_order_id opcional"
// @Success      201   {array}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/receive [post]
func (h *UnitHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveUnitsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	units, err := h.receive.Receive(c.Context(), inventory.ReceiveInput{
		ProductID:       in.ProductID,
		PurchaseOrderID: in.PurchaseOrderID,
		Count:           in.Count,
		PurchaseCostUSD: in.PurchaseCostUSD,
		FreightCostUSD:  in.FreightCostUSD,
		PurchaseRate:    in.PurchaseRate,
		PaymentRate:     in.PaymentRate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"total": len(units),
		"units": dto.NewUnitResponses(units),
	})
}

// GetByID godoc
// @Summary      Consultar una unidad
// @Tags         units
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	unit, err := h.transition.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewUnitResponse(unit))
}

// Transition godoc
// @Summary      Transicionar el estado de una unidad
// @Description  Venta, reserva, vencimiento o daño. Un estado terminal
//
//	congela el costo dinámico de la unidad para siempre.
//
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.TransitionUnitRequest  true  "status destino"
// @Success      200   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units/{id}/status [patch]
func (h *UnitHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.transition.Transition(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "FROZEN", Message: "la unidad está en estado terminal"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewUnitResponse(unit))
}
