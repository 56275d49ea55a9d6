package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

// PaymentLogRepository define el puerto para el log de pagos (append-only).
type PaymentLogRepository interface {
	Create(payment *entity.PaymentLog) error
	ListByTransaction(transactionID string) ([]*entity.PaymentLog, error)
	// SumByTransaction total abonado a la venta (0 si no hay pagos).
	SumByTransaction(transactionID string) (decimal.Decimal, error)
}
