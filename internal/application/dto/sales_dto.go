package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta; qty_used en sub-unidades. Si unit_price
// llega en cero se usa el precio del producto (estándar o de personal según
// el canal).
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	QtyUsed   int64           `json:"qty_used"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SalePaymentRequest un pago del checkout (pago dividido: varios por venta).
type SalePaymentRequest struct {
	Method string          `json:"method"` // CASH | TRANSFER | CREDIT | DEPOSIT
	Amount decimal.Decimal `json:"amount"`
}

// CreateTransactionRequest checkout de una venta.
type CreateTransactionRequest struct {
	CustomerID string               `json:"customer_id"`
	Channel    string               `json:"channel"`
	Discount   decimal.Decimal      `json:"discount"`
	Items      []SaleItemRequest    `json:"items"`
	Payments   []SalePaymentRequest `json:"payments"`
}

// TransactionItemResponse línea persistida.
type TransactionItemResponse struct {
	ID        string          `json:"id"`
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	QtyUsed   int64           `json:"qty_used"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentResponse abono registrado.
type PaymentResponse struct {
	ID            string          `json:"id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method"`
	StaffID       string          `json:"staff_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionResponse venta completa.
type TransactionResponse struct {
	ID               string                    `json:"id"`
	CustomerID       string                    `json:"customer_id"`
	StaffID          string                    `json:"staff_id"`
	TotalAmount      decimal.Decimal           `json:"total_amount"`
	Discount         decimal.Decimal           `json:"discount"`
	NetAmount        decimal.Decimal           `json:"net_amount"`
	RemainingBalance decimal.Decimal           `json:"remaining_balance"`
	PaymentStatus    string                    `json:"payment_status"`
	Status           string                    `json:"status"`
	Channel          string                    `json:"channel"`
	VoidReason       string                    `json:"void_reason,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	Items            []TransactionItemResponse `json:"items"`
	Payments         []PaymentResponse         `json:"payments,omitempty"`
}

// PayDebtRequest abono posterior contra el saldo de una venta.
type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// SettlementResponse resultado de un abono de deuda.
type SettlementResponse struct {
	TransactionID    string          `json:"transaction_id"`
	PaymentStatus    string          `json:"payment_status"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// VoidTransactionRequest anulación con motivo.
type VoidTransactionRequest struct {
	Reason string `json:"reason"` // BOOKING_CANCEL | CLAIM
}

// DebtorResponse venta con saldo pendiente (lista de deudores).
type DebtorResponse struct {
	TransactionID    string          `json:"transaction_id"`
	CustomerID       string          `json:"customer_id"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    string          `json:"payment_status"`
	CreatedAt        time.Time       `json:"created_at"`
}
