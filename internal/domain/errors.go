package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyPaid        = errors.New("la factura ya está pagada")
	// ErrInvariantViolation indica que una mutación dejaría el ledger en un estado
	// imposible (on_hand, reserved o available negativos). Los callers deben
	// pre-validar; este error es la última barrera y aborta la transacción.
	ErrInvariantViolation = errors.New("violación de invariante del ledger")
)
