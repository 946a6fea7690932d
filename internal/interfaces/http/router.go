package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/application/expense"
	"github.com/jhoicas/costos-api/internal/application/inventory"
	"github.com/jhoicas/costos-api/internal/application/report"
	"github.com/jhoicas/costos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Recalculate     *costing.RecalculateUseCase
	ProductCost     *costing.ProductCostUseCase
	Margin          *costing.MarginUseCase
	CostReport      *report.CostReportUseCase
	ExpenseUC       *expense.UseCase
	ReceiveUnits    *inventory.ReceiveUnitsUseCase
	TransitionUnits *inventory.TransitionUnitUseCase
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Motor de costos CTRU
	costingGroup := api.Group("/costing")
	costingHandler := NewCostingHandler(deps.Recalculate, deps.ProductCost, deps.Margin, deps.CostReport)
	costingGroup.Post("/recalculate", costingHandler.Recalculate)
	costingGroup.Get("/products/:id", costingHandler.GetProductCost)
	costingGroup.Post("/margin", costingHandler.ComputeMargin)
	costingGroup.Get("/report", costingHandler.CostReportPDF)

	// Gastos (la captura dispara el recálculo cuando califica)
	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)

	// Unidades físicas (recepción y transiciones de los flujos externos)
	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.ReceiveUnits, deps.TransitionUnits)
	units.Post("/receive", unitHandler.Receive)
	units.Get("/:id", unitHandler.GetByID)
	units.Patch("/:id/status", unitHandler.Transition)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
}
