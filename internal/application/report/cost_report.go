package report

import (
	"context"
	"time"

	"github.com/jhoicas/costos-api/internal/domain/entity"
	"github.com/jhoicas/costos-api/internal/domain/repository"
)

// CostReportRow fila del reporte: producto más su agregado de costos.
// Agg puede ser nil si el producto aún no tiene unidades recalculadas.
type CostReportRow struct {
	Product *entity.Product
	Agg     *entity.ProductCostAggregate
}

// PDFGenerator puerto hacia el generador de PDF (Maroto en infraestructura).
type PDFGenerator interface {
	GenerateCostReportPDF(ctx context.Context, rows []CostReportRow, generatedAt time.Time) ([]byte, error)
}

// CostReportUseCase arma el reporte de costos por producto a partir del
// caché de agregados. Vista de reportería: tolera agregados desactualizados.
type CostReportUseCase struct {
	productRepo repository.ProductRepository
	aggRepo     repository.ProductCostRepository
	generator   PDFGenerator
}

// NewCostReportUseCase construye el caso de uso.
func NewCostReportUseCase(
	productRepo repository.ProductRepository,
	aggRepo repository.ProductCostRepository,
	generator PDFGenerator,
) *CostReportUseCase {
	return &CostReportUseCase{productRepo: productRepo, aggRepo: aggRepo, generator: generator}
}

// reportPageSize tope de productos por reporte.
const reportPageSize = 500

// GenerateProductCostReport devuelve el PDF del reporte de costos.
func (uc *CostReportUseCase) GenerateProductCostReport(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List(reportPageSize, 0)
	if err != nil {
		return nil, err
	}
	rows := make([]CostReportRow, 0, len(products))
	for _, p := range products {
		agg, err := uc.aggRepo.Get(p.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, CostReportRow{Product: p, Agg: agg})
	}
	return uc.generator.GenerateCostReportPDF(ctx, rows, time.Now())
}
