package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos los errores de escritura abortan la transacción que los envuelve y se
// propagan tal cual al caller; el núcleo nunca descarta una mutación fallida
// en silencio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrUnbalancedEntry: el asiento no cumple débito == crédito (epsilon 0.01);
	// se rechaza completo, nada se persiste.
	ErrUnbalancedEntry = errors.New("asiento descuadrado: débito y crédito no coinciden")

	// ErrInsufficientStock: la operación dejaría el stock en negativo;
	// no se registra el movimiento y Equipment.Quantity queda intacto.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInvalidTransferState: transición de traslado no permitida
	// (ej. completar un traslado ya completado).
	ErrInvalidTransferState = errors.New("estado de traslado inválido para la operación")

	// ErrAccountConflict: carrera transitoria creando una cuenta contable;
	// el caller puede reintentar.
	ErrAccountConflict = errors.New("conflicto concurrente creando cuenta contable")
)
