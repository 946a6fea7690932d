package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costos-api/internal/application/dto"
	"github.com/jhoicas/costos-api/internal/application/expense"
	"github.com/jhoicas/costos-api/internal/domain"
)

// ExpenseHandler maneja las peticiones HTTP de gastos.
type ExpenseHandler struct {
	uc *expense.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expense.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un gasto
// @Description  Un gasto compartido y prorrateable dispara el recálculo CTRU;
//
//	en modo síncrono la respuesta incluye el resultado del recálculo.
//
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "category, amount, currency, exchange_rate, is_proratable, sale_id, purchase_order_id"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	exp, recalc, err := h.uc.Create(c.Context(), expense.CreateInput{
		Category:        in.Category,
		Type:            in.Type,
		Description:     in.Description,
		Amount:          in.Amount,
		Currency:        in.Currency,
		ExchangeRate:    in.ExchangeRate,
		IsProratable:    in.IsProratable,
		SaleID:          in.SaleID,
		PurchaseOrderID: in.PurchaseOrderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if exp != nil {
			// El gasto quedó creado pero el recálculo síncrono falló: el
			// gasto sigue sin consumir y el próximo ciclo lo recoge.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"expense": dto.NewExpenseResponse(exp),
				"recalculation_error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	body := fiber.Map{"expense": dto.NewExpenseResponse(exp)}
	if recalc != nil {
		body["recalculation"] = dto.NewRecalculationResponse(recalc)
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (def. 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	expenses, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":    len(expenses),
		"expenses": dto.NewExpenseResponses(expenses),
	})
}

// GetByID godoc
// @Summary      Consultar un gasto
// @Tags         expenses
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	exp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewExpenseResponse(exp))
}
