package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción de venta.
const (
	TxStatusCompleted = "COMPLETED"
	TxStatusVoided    = "VOIDED" // terminal: no hay transición de regreso
)

// Estados de pago derivados del saldo.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusUnpaid  = "UNPAID"
)

// Canales de venta.
const (
	ChannelWalkIn  = "WALKIN"
	ChannelBooking = "BOOKING"
	ChannelStaff   = "STAFF" // venta a personal: aplica StaffPrice
)

// VoidReason motivo de anulación. Espacio de valores separado de
// MovementAction; el efecto sobre stock lo decide ActionForVoidReason.
type VoidReason string

const (
	VoidReasonBookingCancel VoidReason = "BOOKING_CANCEL" // cancelación: el stock retorna
	VoidReasonClaim         VoidReason = "CLAIM"          // reclamo: el stock se castiga, no retorna
)

// ActionForVoidReason mapea el motivo de anulación a la acción de movimiento
// que debe quedar en la tarjeta de stock.
func ActionForVoidReason(r VoidReason) (MovementAction, bool) {
	switch r {
	case VoidReasonBookingCancel:
		return ActionVoidReturn, true
	case VoidReasonClaim:
		return ActionAdjustClaim, true
	}
	return "", false
}

// Transaction representa una venta (cabecera). RemainingBalance y
// PaymentStatus los muta el tracker de deudas; Status lo muta exactamente una
// vez la anulación. Los campos financieros no se tocan al anular.
type Transaction struct {
	ID               string
	CustomerID       string
	StaffID          string
	TotalAmount      decimal.Decimal // suma de subtotales
	Discount         decimal.Decimal
	NetAmount        decimal.Decimal // TotalAmount - Discount (puede ser negativo: ver settlement)
	RemainingBalance decimal.Decimal // nunca se persiste negativo
	PaymentStatus    string          // PAID | PARTIAL | UNPAID
	Status           string          // COMPLETED | VOIDED
	Channel          string
	VoidReason       string // motivo registrado al anular, vacío si COMPLETED
	VoidedBy         string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []TransactionItem
}

// TransactionItem línea de venta; QtyUsed siempre en sub-unidades.
type TransactionItem struct {
	ID            string
	TransactionID string
	LineNo        int // posición de la línea dentro de la venta, desde 1
	ProductID     string
	QtyUsed       int64
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
}
