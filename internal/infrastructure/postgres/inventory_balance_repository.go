package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

var _ repository.InventoryBalanceRepository = (*InventoryBalanceRepo)(nil)

// InventoryBalanceRepo implementación de InventoryBalanceRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryBalanceRepo struct {
	q Querier
}

// NewInventoryBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBalanceRepository(q Querier) *InventoryBalanceRepo {
	return &InventoryBalanceRepo{q: q}
}

// Get obtiene el saldo actual de un producto; nil si no hay fila.
func (r *InventoryBalanceRepo) Get(productID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, full_qty, opened_qty, updated_at
		FROM inventory_balances WHERE product_id = $1`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &b.FullQty, &b.OpenedQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE) durante
// el ciclo leer-calcular-escribir; nil si no hay fila.
func (r *InventoryBalanceRepo) GetForUpdate(productID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, full_qty, opened_qty, updated_at
		FROM inventory_balances WHERE product_id = $1
		FOR UPDATE`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ProductID, &b.FullQty, &b.OpenedQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo del producto.
func (r *InventoryBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory_balances (product_id, full_qty, opened_qty, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id)
		DO UPDATE SET full_qty = EXCLUDED.full_qty, opened_qty = EXCLUDED.opened_qty, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ProductID, balance.FullQty, balance.OpenedQty)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}
