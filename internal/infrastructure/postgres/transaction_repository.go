package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, customer_id, staff_id, total_amount, discount, net_amount,
	       remaining_balance, payment_status, status, channel, void_reason, voided_by,
	       created_at, updated_at`

// Create persiste la cabecera de la venta.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, customer_id, staff_id, total_amount, discount, net_amount, remaining_balance, payment_status, status, channel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, nullIfEmpty(tx.CustomerID), tx.StaffID,
		tx.TotalAmount, tx.Discount, tx.NetAmount, tx.RemainingBalance,
		tx.PaymentStatus, tx.Status, tx.Channel,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *TransactionRepo) CreateItem(item *entity.TransactionItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transaction_items (id, transaction_id, line_no, product_id, qty_used, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransactionID, item.LineNo, item.ProductID,
		item.QtyUsed, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert transaction item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID; nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT FOR UPDATE);
// nil si no existe. Para abonos de deuda y anulación.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *TransactionRepo) scanOne(query, id string) (*entity.Transaction, error) {
	var t entity.Transaction
	var customerID, voidReason, voidedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &customerID, &t.StaffID,
		&t.TotalAmount, &t.Discount, &t.NetAmount, &t.RemainingBalance,
		&t.PaymentStatus, &t.Status, &t.Channel, &voidReason, &voidedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	t.CustomerID = derefStr(customerID)
	t.VoidReason = derefStr(voidReason)
	t.VoidedBy = derefStr(voidedBy)
	return &t, nil
}

// GetItems obtiene las líneas de una venta en el orden en que se vendieron
// (line_no asignado por el motor de ventas).
func (r *TransactionRepo) GetItems(transactionID string) ([]*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, line_no, product_id, qty_used, unit_price, subtotal
		FROM transaction_items WHERE transaction_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItem
	for rows.Next() {
		var item entity.TransactionItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.LineNo, &item.ProductID,
			&item.QtyUsed, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateSettlement persiste estado de pago y saldo recalculados.
func (r *TransactionRepo) UpdateSettlement(id, paymentStatus string, remaining decimal.Decimal) error {
	query := `
		UPDATE transactions
		SET payment_status = $2, remaining_balance = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, paymentStatus, remaining)
	if err != nil {
		return fmt.Errorf("update settlement: %w", err)
	}
	return nil
}

// MarkVoided cambia la cabecera a VOIDED con motivo y autor. El caller debe
// haber verificado el estado bajo GetForUpdate.
func (r *TransactionRepo) MarkVoided(id, reason, staffID string) error {
	query := `
		UPDATE transactions
		SET status = $2, void_reason = $3, voided_by = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.TxStatusVoided, reason, staffID)
	if err != nil {
		return fmt.Errorf("mark voided: %w", err)
	}
	return nil
}

// ListDebtors ventas no anuladas con saldo > 0, por saldo descendente.
func (r *TransactionRepo) ListDebtors(limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status <> '` + entity.TxStatusVoided + `' AND remaining_balance > 0
		ORDER BY remaining_balance DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var customerID, voidReason, voidedBy *string
		if err := rows.Scan(&t.ID, &customerID, &t.StaffID,
			&t.TotalAmount, &t.Discount, &t.NetAmount, &t.RemainingBalance,
			&t.PaymentStatus, &t.Status, &t.Channel, &voidReason, &voidedBy,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan debtor: %w", err)
		}
		t.CustomerID = derefStr(customerID)
		t.VoidReason = derefStr(voidReason)
		t.VoidedBy = derefStr(voidedBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}
