package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/application/dto"
	"github.com/jhoicas/costos-api/internal/application/report"
	"github.com/jhoicas/costos-api/internal/domain"
)

// CostingHandler maneja las peticiones HTTP del motor de costos CTRU.
type CostingHandler struct {
	recalc      *costing.RecalculateUseCase
	productCost *costing.ProductCostUseCase
	margin      *costing.MarginUseCase
	costReport  *report.CostReportUseCase
}

// NewCostingHandler construye el handler.
func NewCostingHandler(
	recalc *costing.RecalculateUseCase,
	productCost *costing.ProductCostUseCase,
	margin *costing.MarginUseCase,
	costReport *report.CostReportUseCase,
) *CostingHandler {
	return &CostingHandler{recalc: recalc, productCost: productCost, margin: margin, costReport: costReport}
}

// Recalculate godoc
// @Summary      Recalcular CTRU bajo demanda
// @Description  Prorratea los gastos compartidos pendientes entre las unidades
//
//	activas y confirma el lote atómico. Sin trabajo calificado devuelve ceros.
//
// @Tags         costing
// @Produce      json
// @Success      200  {object}  dto.RecalculationResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/costing/recalculate [post]
func (h *CostingHandler) Recalculate(c *fiber.Ctx) error {
	res, err := h.recalc.Recalculate(c.Context())
	if err != nil {
		// Fallo = cero unidades actualizadas + causa; distinguible del no-op
		// exitoso que responde 200 con ceros y sin error.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "RECALC_FAILED", Message: err.Error(),
		})
	}
	return c.JSON(dto.NewRecalculationResponse(res))
}

// GetProductCost godoc
// @Summary      Costo agregado de un producto
// @Description  Lee el caché promedio/mín/máx del último recálculo confirmado.
// @Tags         costing
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/costing/products/{id} [get]
func (h *CostingHandler) GetProductCost(c *fiber.Ctx) error {
	agg, err := h.productCost.GetProductCost(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "el producto no tiene costos calculados",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewProductCostResponse(agg))
}

// ComputeMargin godoc
// @Summary      Margen bruto de una venta
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarginRequest  true  "precio de venta y unidades asignadas"
// @Success      200   {object}  dto.MarginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costing/margin [post]
func (h *CostingHandler) ComputeMargin(c *fiber.Ctx) error {
	var in dto.MarginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.margin.ComputeMargin(c.Context(), in.SalePrice, in.UnitIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewMarginResponse(m))
}

// CostReportPDF godoc
// @Summary      Reporte de costos por producto (PDF)
// @Tags         costing
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/costing/report [get]
func (h *CostingHandler) CostReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.costReport.GenerateProductCostReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-costos.pdf"`)
	return c.Send(pdfBytes)
}
