package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// VoidUseCase coordina la anulación de una venta completada. El cambio de
// estado de la cabecera y las reversas de stock de todos los ítems comparten
// una transacción: se confirman juntas o no se confirma nada.
type VoidUseCase struct {
	txRunner    SalesTxRunner
	ledger      StockLedger
	productRepo repository.ProductRepository
}

// NewVoidUseCase construye el coordinador.
func NewVoidUseCase(txRunner SalesTxRunner, ledger StockLedger, productRepo repository.ProductRepository) *VoidUseCase {
	return &VoidUseCase{txRunner: txRunner, ledger: ledger, productRepo: productRepo}
}

// VoidTransaction anula la venta según el motivo:
//
//   - BOOKING_CANCEL: cada ítem retorna al stock (VOID_RETURN con referencia a
//     la venta).
//   - CLAIM: el stock NO retorna; se asienta ADJUST_CLAIM por ítem con delta
//     negativo (castigo: el tratamiento reclamado no es revendible).
//
// Precondición: estado COMPLETED. Anular una venta ya anulada falla con
// ErrAlreadyVoided y no toca stock. VOIDED es terminal. Los campos
// financieros (neto, saldo, pagos) no se modifican: cualquier reembolso es
// asunto de la capa de caja/reportes.
func (uc *VoidUseCase) VoidTransaction(ctx context.Context, transactionID string, reason entity.VoidReason, staffID string) error {
	if transactionID == "" || staffID == "" {
		return domain.ErrInvalidInput
	}
	action, ok := entity.ActionForVoidReason(reason)
	if !ok {
		return fmt.Errorf("motivo de anulación %q: %w", reason, domain.ErrInvalidInput)
	}

	now := time.Now()
	return uc.txRunner.RunSales(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		_ repository.PaymentLogRepository,
	) error {
		tx, err := txRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("transacción %s: %w", transactionID, domain.ErrTransactionNotFound)
		}
		if tx.Status != entity.TxStatusCompleted {
			return fmt.Errorf("transacción %s: %w", transactionID, domain.ErrAlreadyVoided)
		}

		if err := txRepo.MarkVoided(transactionID, string(reason), staffID); err != nil {
			return err
		}

		items, err := txRepo.GetItems(transactionID)
		if err != nil {
			return err
		}
		for _, item := range items {
			switch action {
			case entity.ActionVoidReturn:
				product, err := uc.productRepo.GetByID(item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
				}
				if err := uc.ledger.ReverseForVoidInTx(
					balanceRepo, movRepo, product,
					item.QtyUsed, staffID, transactionID, now,
				); err != nil {
					return err
				}
			case entity.ActionAdjustClaim:
				if err := uc.ledger.WriteOffClaimInTx(
					movRepo, item.ProductID,
					item.QtyUsed, staffID, transactionID, now,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
