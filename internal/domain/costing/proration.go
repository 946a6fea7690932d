package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costos-api/internal/domain/entity"
)

// Impact resultado del cálculo de prorrateo: cuota por unidad activa y los
// gastos que la componen (candidatos a marcarse como consumidos únicamente
// si el lote atómico del orquestador confirma).
type Impact struct {
	PerUnit     decimal.Decimal
	TotalAmount decimal.Decimal
	ExpenseIDs  []string
}

// ComputeImpact suma los gastos compartidos calificados y los divide entre
// las unidades activas. Si alguno de los dos conjuntos está vacío devuelve
// impacto cero sin candidatos (no-op: nada se marca, nada se escribe).
//
// El filtrado re-verifica la clase aunque el repositorio ya filtre: un gasto
// directo con la bandera prorrateable mal puesta queda excluido por
// construcción. La división se hace sin redondear; el redondeo a dos
// decimales ocurre solo en presentación para no acumular error a través de
// miles de unidades.
func ComputeImpact(expenses []*entity.Expense, activeUnits int) Impact {
	if activeUnits <= 0 {
		return Impact{PerUnit: decimal.Zero, TotalAmount: decimal.Zero}
	}

	total := decimal.Zero
	var ids []string
	for _, e := range expenses {
		if !e.Proratable() {
			continue
		}
		total = total.Add(e.AmountLocal())
		ids = append(ids, e.ID)
	}
	if len(ids) == 0 {
		return Impact{PerUnit: decimal.Zero, TotalAmount: decimal.Zero}
	}

	return Impact{
		PerUnit:     total.Div(decimal.NewFromInt(int64(activeUnits))),
		TotalAmount: total,
		ExpenseIDs:  ids,
	}
}
