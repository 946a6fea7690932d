package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto. La categoría determina la clase:
// {sale, distribution} => clase "direct" (atribuible a una venta, jamás prorrateada);
// {administrative, operational} => clase "shared" (elegible para prorrateo).
const (
	ExpenseCategorySale           = "sale"
	ExpenseCategoryDistribution   = "distribution"
	ExpenseCategoryAdministrative = "administrative"
	ExpenseCategoryOperational    = "operational"
)

// Clases derivadas de la categoría.
const (
	ExpenseClassDirect = "direct"
	ExpenseClassShared = "shared"
)

// ExpenseTypeFreight tipo distinguido dentro de administrative/operational:
// se reparte por orden de compra (Freight Allocator), nunca entra al
// prorrateo general de gastos compartidos.
const ExpenseTypeFreight = "freight"

// ExpenseClassFor devuelve la clase para una categoría; cadena vacía si la
// categoría no existe.
func ExpenseClassFor(category string) string {
	switch category {
	case ExpenseCategorySale, ExpenseCategoryDistribution:
		return ExpenseClassDirect
	case ExpenseCategoryAdministrative, ExpenseCategoryOperational:
		return ExpenseClassShared
	}
	return ""
}

// Expense representa una salida de dinero contabilizada.
// Consumed se marca exactamente una vez por el orquestador de recálculo y
// nunca se revierte: es el invariante central de idempotencia del motor.
// Un gasto consumido nunca se elimina (traza de auditoría).
type Expense struct {
	ID              string
	Category        string
	Type            string // "" o ExpenseTypeFreight
	Description     string
	Amount          decimal.Decimal
	Currency        string           // código ISO; vacío = moneda local
	ExchangeRate    *decimal.Decimal // tasa usada para convertir a moneda local si es divisa extranjera
	IsProratable    bool
	Consumed        bool
	ConsumedAt      *time.Time
	SaleID          string // atribución directa (clase direct)
	PurchaseOrderID string // vínculo para gastos de flete
	CreatedAt       time.Time
}

// Class devuelve la clase derivada de la categoría.
func (e *Expense) Class() string { return ExpenseClassFor(e.Category) }

// AmountLocal devuelve el monto en moneda local. Si el gasto está en divisa
// extranjera aplica la tasa registrada; sin tasa se toma el monto tal cual
// (gastos históricos anteriores a la captura estricta de tasas).
func (e *Expense) AmountLocal() decimal.Decimal {
	if e.ExchangeRate != nil && !e.ExchangeRate.IsZero() {
		return e.Amount.Mul(*e.ExchangeRate)
	}
	return e.Amount
}

// Proratable indica si el gasto califica para el prorrateo general: clase
// shared, bandera activa, no consumido y que no sea flete (el flete se
// reparte por orden de compra). La clase manda sobre la bandera: un gasto
// direct marcado prorrateable por error queda excluido igual.
func (e *Expense) Proratable() bool {
	return e.Class() == ExpenseClassShared &&
		e.IsProratable &&
		!e.Consumed &&
		e.Type != ExpenseTypeFreight
}
