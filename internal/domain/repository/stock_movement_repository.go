package repository

import (
	"time"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

// StockMovementRepository define el puerto para la tarjeta de stock.
// Solo inserciones y lecturas: los movimientos nunca se editan ni borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
}
