package sales

import (
	"context"
	"time"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de inventario y de ventas. Es el único mecanismo de escritura
// del motor de ventas, el tracker de deudas y el coordinador de anulación:
// Commit si fn retorna nil, Rollback en cualquier error (todo-o-nada).
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentLogRepository,
	) error) error
}

// StockLedger operaciones del ledger ejecutables dentro de la transacción del
// caller (misma tx SQL). Si retornan error (ej: ErrInsufficientStock), el
// caller debe propagar para que el runner haga rollback.
type StockLedger interface {
	DeductForUsageInTx(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
		product *entity.Product,
		qtySub int64,
		staffID, note, relatedTxID string,
		now time.Time,
	) (*entity.InventoryBalance, error)

	ReverseForVoidInTx(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
		product *entity.Product,
		qtySub int64,
		staffID, relatedTxID string,
		now time.Time,
	) error

	WriteOffClaimInTx(
		movRepo repository.StockMovementRepository,
		productID string,
		qtySub int64,
		staffID, relatedTxID string,
		now time.Time,
	) error
}

// ReceiptPDFGenerator genera el recibo imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data *ReceiptData) ([]byte, error)
}

// ReceiptData todo lo que el generador necesita para armar el recibo.
type ReceiptData struct {
	Clinic      ClinicInfo
	Transaction *entity.Transaction
	Items       []ReceiptItem
	Payments    []*entity.PaymentLog
}

// ClinicInfo membrete del recibo.
type ClinicInfo struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// ReceiptItem línea enriquecida con nombre de producto y unidad.
type ReceiptItem struct {
	entity.TransactionItem
	ProductName string
	SubUnit     string
}
