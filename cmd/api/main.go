package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appcosting "github.com/jhoicas/costos-api/internal/application/costing"
	"github.com/jhoicas/costos-api/internal/application/expense"
	"github.com/jhoicas/costos-api/internal/application/inventory"
	"github.com/jhoicas/costos-api/internal/application/report"
	"github.com/jhoicas/costos-api/internal/application/usecase"
	"github.com/jhoicas/costos-api/internal/domain/costing"
	infrapdf "github.com/jhoicas/costos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/costos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/costos-api/internal/interfaces/http"
	"github.com/jhoicas/costos-api/internal/scheduler"
	"github.com/jhoicas/costos-api/pkg/config"
	"github.com/jhoicas/costos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	unitRepo := postgres.NewUnitRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	aggRepo := postgres.NewProductCostRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := costing.NewCurrencyResolver(cfg.Costing.DefaultRate)

	// Motor de costos CTRU
	freightAllocator := appcosting.NewFreightAllocator(unitRepo, expenseRepo)
	aggregateUpdater := appcosting.NewAggregateUpdater(unitRepo, aggRepo)
	recalculateUC := appcosting.NewRecalculateUseCase(
		txRunner, unitRepo, expenseRepo,
		freightAllocator, aggregateUpdater, resolver,
		log.Component("costing"),
	)
	productCostUC := appcosting.NewProductCostUseCase(aggRepo)
	marginUC := appcosting.NewMarginUseCase(unitRepo)

	expenseUC := expense.NewUseCase(expenseRepo, recalculateUC, cfg.Costing.AsyncRecalc, log.Component("expense"))
	receiveUnitsUC := inventory.NewReceiveUnitsUseCase(unitRepo, productRepo, resolver)
	transitionUnitUC := inventory.NewTransitionUnitUseCase(unitRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	// PDF: reporte de costos por producto
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	costReportUC := report.NewCostReportUseCase(productRepo, aggRepo, reportGenerator)

	// Barrido programado: recoge gastos cuyo recálculo automático falló
	sched := scheduler.NewScheduler(recalculateUC, cfg.Costing.CronSpec, log.Component("scheduler"))
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Recalculate:     recalculateUC,
		ProductCost:     productCostUC,
		Margin:          marginUC,
		CostReport:      costReportUC,
		ExpenseUC:       expenseUC,
		ReceiveUnits:    receiveUnitsUC,
		TransitionUnits: transitionUnitUC,
		ProductUC:       productUC,
		SupplierUC:      supplierUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
