package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/sales"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// Asegura que TxRunner implementa los puertos de inventario y ventas.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SalesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repositorios atados a esa tx. El Rollback diferido garantiza que ninguna
// ruta de error deje estado parcial visible.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repositorios del ledger de stock y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balanceRepo := NewInventoryBalanceRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(balanceRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales inicia una transacción con repos de inventario y ventas (checkout,
// abonos de deuda y anulación).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balanceRepo := NewInventoryBalanceRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	txRepo := NewTransactionRepository(tx)
	payRepo := NewPaymentLogRepository(tx)

	if err := fn(balanceRepo, movRepo, txRepo, payRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
