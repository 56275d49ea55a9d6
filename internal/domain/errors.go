package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los envuelven
// con fmt.Errorf("...: %w", err) nombrando la entidad afectada; los handlers
// resuelven el status HTTP con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto sin saldo de inventario")
	ErrTransactionNotFound = errors.New("transacción no encontrada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrOverpayment         = errors.New("el abono excede el saldo pendiente")
	ErrAlreadyVoided       = errors.New("la transacción ya fue anulada")
)
