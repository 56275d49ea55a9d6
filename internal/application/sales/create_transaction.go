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

// EngineUseCase crea ventas: cabecera, líneas, deducción de stock por línea y
// pagos divididos, todo en una sola transacción de BD. Este es el único punto
// del sistema que exige atomicidad multi-fila real: stock descontado sin venta
// registrada (o al revés) es un bug de correctitud, no un modo degradado.
type EngineUseCase struct {
	txRunner    SalesTxRunner
	ledger      StockLedger
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	payRepo     repository.PaymentLogRepository
}

// NewEngineUseCase construye el motor de ventas. txRepo y payRepo (atados al
// pool) solo sirven lecturas; toda escritura pasa por txRunner.
func NewEngineUseCase(
	txRunner SalesTxRunner,
	ledger StockLedger,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentLogRepository,
) *EngineUseCase {
	return &EngineUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		txRepo:      txRepo,
		payRepo:     payRepo,
	}
}

// CreateTransaction ejecuta el checkout:
//
//  1. Valida ítems (no vacíos, producto existente, qty > 0) y pagos.
//  2. Calcula total, neto = total - descuento. El descuento no se valida
//     contra el total: un neto negativo aflora como sobrepago (ver settlement).
//  3. En una sola transacción: inserta cabecera, por cada ítem inserta la
//     línea y descuenta stock (cualquier falla revierte todo, identificando
//     el producto sin stock), inserta pagos con monto > 0 y persiste el
//     estado de pago derivado.
func (uc *EngineUseCase) CreateTransaction(ctx context.Context, staffID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if staffID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("descuento negativo: %w", domain.ErrInvalidInput)
	}
	for _, p := range in.Payments {
		if !entity.ValidPaymentMethod(p.Method) {
			return nil, fmt.Errorf("método de pago %q: %w", p.Method, domain.ErrInvalidInput)
		}
		if p.Amount.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("pago negativo: %w", domain.ErrInvalidInput)
		}
	}
	channel := in.Channel
	if channel == "" {
		channel = entity.ChannelWalkIn
	}

	// Validar productos y resolver precios (solo lectura, fuera de la tx)
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.QtyUsed <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			if channel == entity.ChannelStaff {
				in.Items[i].UnitPrice = product.StaffPrice
			} else {
				in.Items[i].UnitPrice = product.StandardPrice
			}
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	// Totales
	total := decimal.Zero
	items := make([]*entity.TransactionItem, 0, len(in.Items))
	for i, item := range in.Items {
		subtotal := decimal.NewFromInt(item.QtyUsed).Mul(item.UnitPrice)
		total = total.Add(subtotal)
		items = append(items, &entity.TransactionItem{
			ID:            uuid.New().String(),
			TransactionID: txID,
			LineNo:        i + 1,
			ProductID:     item.ProductID,
			QtyUsed:       item.QtyUsed,
			UnitPrice:     item.UnitPrice,
			Subtotal:      subtotal,
		})
	}
	net := total.Sub(in.Discount)

	header := &entity.Transaction{
		ID:               txID,
		CustomerID:       in.CustomerID,
		StaffID:          staffID,
		TotalAmount:      total,
		Discount:         in.Discount,
		NetAmount:        net,
		RemainingBalance: net,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		Status:           entity.TxStatusCompleted,
		Channel:          channel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var payments []*entity.PaymentLog
	err := uc.txRunner.RunSales(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		payRepo repository.PaymentLogRepository,
	) error {
		if err := txRepo.Create(header); err != nil {
			return err
		}
		// Deducciones en el orden de ítems del caller; cualquier falla
		// revierte cabecera, líneas y deducciones previas.
		for _, item := range items {
			if err := txRepo.CreateItem(item); err != nil {
				return err
			}
			product := productsByID[item.ProductID]
			if _, err := uc.ledger.DeductForUsageInTx(
				balanceRepo, movRepo, product,
				item.QtyUsed, staffID, "", txID, now,
			); err != nil {
				return err
			}
		}

		paid := decimal.Zero
		for _, p := range in.Payments {
			if !p.Amount.GreaterThan(decimal.Zero) {
				continue
			}
			payment := &entity.PaymentLog{
				ID:            uuid.New().String(),
				TransactionID: txID,
				AmountPaid:    p.Amount,
				PaymentMethod: p.Method,
				StaffID:       staffID,
				CreatedAt:     now,
			}
			if err := payRepo.Create(payment); err != nil {
				return err
			}
			payments = append(payments, payment)
			paid = paid.Add(p.Amount)
		}

		status, remaining := settlement.Compute(net, paid)
		header.PaymentStatus = status
		header.RemainingBalance = remaining
		return txRepo.UpdateSettlement(txID, status, remaining)
	})
	if err != nil {
		return nil, err
	}

	header.Items = make([]entity.TransactionItem, len(items))
	for i, item := range items {
		header.Items[i] = *item
	}
	return toTransactionResponse(header, payments), nil
}

// GetTransaction obtiene una venta con líneas y pagos.
func (uc *EngineUseCase) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("transacción %s: %w", id, domain.ErrTransactionNotFound)
	}
	items, err := uc.txRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	tx.Items = make([]entity.TransactionItem, len(items))
	for i, item := range items {
		tx.Items[i] = *item
	}
	payments, err := uc.payRepo.ListByTransaction(id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx, payments), nil
}

func toTransactionResponse(tx *entity.Transaction, payments []*entity.PaymentLog) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:               tx.ID,
		CustomerID:       tx.CustomerID,
		StaffID:          tx.StaffID,
		TotalAmount:      tx.TotalAmount,
		Discount:         tx.Discount,
		NetAmount:        tx.NetAmount,
		RemainingBalance: tx.RemainingBalance,
		PaymentStatus:    tx.PaymentStatus,
		Status:           tx.Status,
		Channel:          tx.Channel,
		VoidReason:       tx.VoidReason,
		CreatedAt:        tx.CreatedAt,
		Items:            make([]dto.TransactionItemResponse, 0, len(tx.Items)),
	}
	for _, item := range tx.Items {
		resp.Items = append(resp.Items, dto.TransactionItemResponse{
			ID:        item.ID,
			LineNo:    item.LineNo,
			ProductID: item.ProductID,
			QtyUsed:   item.QtyUsed,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:            p.ID,
			AmountPaid:    p.AmountPaid,
			PaymentMethod: p.PaymentMethod,
			StaffID:       p.StaffID,
			CreatedAt:     p.CreatedAt,
		})
	}
	return resp
}
