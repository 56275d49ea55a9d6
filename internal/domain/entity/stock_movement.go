package entity

import "time"

// MovementAction tipo de movimiento de la tarjeta de stock.
// Es un espacio de valores distinto de VoidReason: la anulación de una venta
// se traduce a una acción de movimiento vía ActionForVoidReason.
type MovementAction string

// Acciones de movimiento de inventario.
const (
	ActionIN            MovementAction = "IN"             // recepción de compra
	ActionOUT           MovementAction = "OUT"            // consumo por venta/uso
	ActionTRANSFER      MovementAction = "TRANSFER"       // salida hacia otra sede (solo informativo)
	ActionAdjustDamaged MovementAction = "ADJUST_DAMAGED" // baja por daño
	ActionAdjustExpired MovementAction = "ADJUST_EXPIRED" // baja por vencimiento
	ActionAdjustLost    MovementAction = "ADJUST_LOST"    // baja por pérdida
	ActionAdjustClaim   MovementAction = "ADJUST_CLAIM"   // castigo por reclamo (no retorna a stock)
	ActionVoidReturn    MovementAction = "VOID_RETURN"    // retorno a stock por anulación
)

// Valid reporta si la acción pertenece al catálogo.
func (a MovementAction) Valid() bool {
	switch a {
	case ActionIN, ActionOUT, ActionTRANSFER,
		ActionAdjustDamaged, ActionAdjustExpired, ActionAdjustLost,
		ActionAdjustClaim, ActionVoidReturn:
		return true
	}
	return false
}

// AdjustAction reporta si la acción es una baja/ajuste que exige evidencia.
func (a MovementAction) AdjustAction() bool {
	switch a {
	case ActionAdjustDamaged, ActionAdjustExpired, ActionAdjustLost, ActionAdjustClaim:
		return true
	}
	return false
}

// StockMovement es el asiento append-only de la tarjeta de stock: se crea uno
// por operación que afecta inventario y nunca se edita ni borra. Es la fuente
// de verdad para reportes de kardex y auditoría.
type StockMovement struct {
	ID                   string
	ProductID            string
	StaffID              string
	Action               MovementAction
	QtyMain              int64 // delta con signo en unidades completas
	QtySub               int64 // delta con signo en sub-unidades
	LotNumber            string
	ExpiryDate           *time.Time
	EvidenceImage        string // referencia a la imagen de soporte (bajas)
	Note                 string
	RelatedTransactionID string // venta asociada (OUT por venta, VOID_RETURN, ADJUST_CLAIM)
	CreatedAt            time.Time
}
