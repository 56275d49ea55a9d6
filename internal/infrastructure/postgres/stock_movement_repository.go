package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: la tarjeta de stock es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un asiento de la tarjeta de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, staff_id, action, qty_main, qty_sub, lot_number, expiry_date, evidence_image, note, related_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.StaffID, string(movement.Action),
		movement.QtyMain, movement.QtySub,
		nullIfEmpty(movement.LotNumber), movement.ExpiryDate,
		nullIfEmpty(movement.EvidenceImage), nullIfEmpty(movement.Note),
		nullIfEmpty(movement.RelatedTransactionID), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista el kardex de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, staff_id, action, qty_main, qty_sub, lot_number, expiry_date, evidence_image, note, related_transaction_id, created_at
		FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByTransaction lista los asientos asociados a una venta (OUT, VOID_RETURN, ADJUST_CLAIM).
func (r *StockMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, staff_id, action, qty_main, qty_sub, lot_number, expiry_date, evidence_image, note, related_transaction_id, created_at
		FROM stock_movements WHERE related_transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list movements by transaction: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var action string
		var lot, evidence, note, relatedTx *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.StaffID, &action,
			&m.QtyMain, &m.QtySub, &lot, &m.ExpiryDate,
			&evidence, &note, &relatedTx, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Action = entity.MovementAction(action)
		m.LotNumber = derefStr(lot)
		m.EvidenceImage = derefStr(evidence)
		m.Note = derefStr(note)
		m.RelatedTransactionID = derefStr(relatedTx)
		list = append(list, &m)
	}
	return list, rows.Err()
}
