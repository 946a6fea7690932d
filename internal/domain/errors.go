package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrExpenseConsumed   = errors.New("el gasto ya fue consumido por un recálculo previo")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)
