package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

var _ repository.PaymentLogRepository = (*PaymentLogRepo)(nil)

// PaymentLogRepo implementación del puerto PaymentLogRepository. El log de
// pagos es append-only: nunca se actualiza ni se borra una fila.
type PaymentLogRepo struct {
	q Querier
}

// NewPaymentLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentLogRepository(q Querier) *PaymentLogRepo {
	return &PaymentLogRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentLogRepo) Create(payment *entity.PaymentLog) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payment_logs (id, transaction_id, amount_paid, payment_method, staff_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TransactionID, payment.AmountPaid,
		payment.PaymentMethod, payment.StaffID, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByTransaction pagos de una venta en orden cronológico.
func (r *PaymentLogRepo) ListByTransaction(transactionID string) ([]*entity.PaymentLog, error) {
	query := `
		SELECT id, transaction_id, amount_paid, payment_method, staff_id, created_at
		FROM payment_logs WHERE transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentLog
	for rows.Next() {
		var p entity.PaymentLog
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.AmountPaid,
			&p.PaymentMethod, &p.StaffID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByTransaction total abonado a la venta. 0 si no hay pagos.
func (r *PaymentLogRepo) SumByTransaction(transactionID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount_paid), 0) FROM payment_logs WHERE transaction_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, transactionID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}
