package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// envuelven con fmt.Errorf("%w: ...") para que la capa HTTP sepa qué regla disparó.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPolicy            = errors.New("operación no permitida por política")
	ErrAuthority         = errors.New("rol sin autoridad para decidir")
	ErrConflict          = errors.New("conflicto con el estado actual")
)
