package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para ventas y sus líneas.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	CreateItem(item *entity.TransactionItem) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la cabecera para abonos de deuda y anulación
	// (SELECT FOR UPDATE). Devuelve nil si no existe.
	GetForUpdate(id string) (*entity.Transaction, error)
	GetItems(transactionID string) ([]*entity.TransactionItem, error)
	// UpdateSettlement persiste estado de pago y saldo recalculados.
	UpdateSettlement(id, paymentStatus string, remaining decimal.Decimal) error
	// MarkVoided cambia la cabecera a VOIDED registrando motivo y autor.
	MarkVoided(id, reason, staffID string) error
	// ListDebtors devuelve las ventas no anuladas con saldo > 0, saldo descendente.
	ListDebtors(limit, offset int) ([]*entity.Transaction, error)
}
