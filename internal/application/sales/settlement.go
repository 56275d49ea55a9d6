package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/dto"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/settlement"
)

// PayDebt registra un abono posterior contra el saldo de una venta. Bloquea la
// cabecera (SELECT FOR UPDATE), relee el saldo bajo el lock y rechaza montos
// mayores al pendiente; el saldo jamás queda negativo por abonos concurrentes.
func (uc *EngineUseCase) PayDebt(ctx context.Context, transactionID, staffID string, in dto.PayDebtRequest) (*dto.SettlementResponse, error) {
	if transactionID == "" || staffID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("abono debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("método de pago %q: %w", in.Method, domain.ErrInvalidInput)
	}

	now := time.Now()
	var result *dto.SettlementResponse
	err := uc.txRunner.RunSales(ctx, func(
		_ repository.InventoryBalanceRepository,
		_ repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentLogRepository,
	) error {
		tx, err := txRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("transacción %s: %w", transactionID, domain.ErrTransactionNotFound)
		}
		if tx.Status == entity.TxStatusVoided {
			return fmt.Errorf("transacción %s: %w", transactionID, domain.ErrAlreadyVoided)
		}
		if in.Amount.GreaterThan(tx.RemainingBalance) {
			return fmt.Errorf("transacción %s (saldo %s, abono %s): %w",
				transactionID, tx.RemainingBalance.String(), in.Amount.String(), domain.ErrOverpayment)
		}

		if err := payRepo.Create(&entity.PaymentLog{
			ID:            uuid.New().String(),
			TransactionID: transactionID,
			AmountPaid:    in.Amount,
			PaymentMethod: in.Method,
			StaffID:       staffID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		paid, err := payRepo.SumByTransaction(transactionID)
		if err != nil {
			return err
		}
		status, remaining := settlement.Compute(tx.NetAmount, paid)
		if err := txRepo.UpdateSettlement(transactionID, status, remaining); err != nil {
			return err
		}
		result = &dto.SettlementResponse{
			TransactionID:    transactionID,
			PaymentStatus:    status,
			RemainingBalance: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListDebtors ventas no anuladas con saldo pendiente, ordenadas por saldo
// descendente (lectura pura).
func (uc *EngineUseCase) ListDebtors(ctx context.Context, limit, offset int) ([]dto.DebtorResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	debtors, err := uc.txRepo.ListDebtors(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtorResponse, 0, len(debtors))
	for _, tx := range debtors {
		out = append(out, dto.DebtorResponse{
			TransactionID:    tx.ID,
			CustomerID:       tx.CustomerID,
			NetAmount:        tx.NetAmount,
			RemainingBalance: tx.RemainingBalance,
			PaymentStatus:    tx.PaymentStatus,
			CreatedAt:        tx.CreatedAt,
		})
	}
	return out, nil
}
