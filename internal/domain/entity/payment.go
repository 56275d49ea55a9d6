package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCredit   = "CREDIT"
	PaymentMethodDeposit  = "DEPOSIT"
)

// ValidPaymentMethod reporta si el método pertenece al catálogo.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCredit, PaymentMethodDeposit:
		return true
	}
	return false
}

// PaymentLog es un abono registrado contra una venta. Append-only: el pago
// dividido en caja y los abonos posteriores de deuda agregan filas nuevas,
// nunca editan las existentes.
type PaymentLog struct {
	ID            string
	TransactionID string
	AmountPaid    decimal.Decimal
	PaymentMethod string
	StaffID       string
	CreatedAt     time.Time
}
