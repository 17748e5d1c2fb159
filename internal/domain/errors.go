package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrValidation   = errors.New("entrada inválida")

	// ErrAttachmentsRequired: la transición a COMPLETED exige adjuntos
	// cuando la política de la industria activa el candado de cierre.
	ErrAttachmentsRequired = errors.New("se requieren adjuntos para completar la orden")

	// ErrOverpayment: el pago excede el saldo pendiente de la orden.
	ErrOverpayment = errors.New("el pago excede el saldo pendiente")

	// ErrInvalidState: la operación no aplica al estado actual de la entidad.
	ErrInvalidState = errors.New("operación inválida para el estado actual")
)
