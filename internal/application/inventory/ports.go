package inventory

import (
	"context"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad fila de saldo + asiento
// de movimiento: Commit si fn retorna nil, Rollback en cualquier error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
