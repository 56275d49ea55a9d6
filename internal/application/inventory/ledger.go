package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/stock"
)

// LedgerUseCase es el dueño exclusivo de InventoryBalance: toda mutación de
// saldo pasa por aquí, dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) y exactamente un asiento en stock_movements por ítem
// afectado. Si cualquier paso falla, la operación completa se revierte.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	balanceRepo repository.InventoryBalanceRepository
}

// NewLedgerUseCase construye el caso de uso. movRepo y balanceRepo (atados al
// pool) solo se usan para lecturas; las escrituras van por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		balanceRepo: balanceRepo,
	}
}

// ReceiveStockInput entrada para una recepción de compra (siempre en unidades
// completas, sin tope superior).
type ReceiveStockInput struct {
	ProductID  string
	QtyFull    int64
	LotNumber  string
	ExpiryDate *time.Time
	Evidence   string
	Note       string
	StaffID    string
}

// ReceiveStock incrementa FullQty y registra un asiento IN con lote/vencimiento.
// Crea la fila de saldo si el producto aún no tiene inventario.
func (uc *LedgerUseCase) ReceiveStock(ctx context.Context, in ReceiveStockInput) error {
	if in.ProductID == "" || in.StaffID == "" || in.QtyFull <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if balance == nil {
			balance = &entity.InventoryBalance{ProductID: in.ProductID}
		}
		balance.FullQty += in.QtyFull
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			StaffID:       in.StaffID,
			Action:        entity.ActionIN,
			QtyMain:       in.QtyFull,
			QtySub:        0,
			LotNumber:     in.LotNumber,
			ExpiryDate:    in.ExpiryDate,
			EvidenceImage: in.Evidence,
			Note:          in.Note,
			CreatedAt:     now,
		})
	})
}

// DeductForUsage descuenta qtySub sub-unidades por venta/uso y devuelve el
// saldo resultante. Falla con ErrInsufficientStock identificando el producto,
// sin dejar estado parcial.
func (uc *LedgerUseCase) DeductForUsage(ctx context.Context, productID string, qtySub int64, staffID, note string) (*entity.InventoryBalance, error) {
	if productID == "" || staffID == "" || qtySub <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}

	var result *entity.InventoryBalance
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		balance, err := uc.DeductForUsageInTx(balanceRepo, movRepo, product, qtySub, staffID, note, "", now)
		if err != nil {
			return err
		}
		result = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeductForUsageInTx ejecuta la deducción usando los repositorios del caller
// (misma transacción): bloquea la fila, corre el modelo de conversión y
// registra el asiento OUT. Lo reutiliza el motor de ventas para que la venta
// completa sea todo-o-nada. relatedTxID referencia la venta, vacío para usos
// directos.
func (uc *LedgerUseCase) DeductForUsageInTx(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	qtySub int64,
	staffID, note, relatedTxID string,
	now time.Time,
) (*entity.InventoryBalance, error) {
	balance, err := balanceRepo.GetForUpdate(product.ID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("producto %s: %w", product.ID, domain.ErrProductNotFound)
	}

	newFull, newOpened, err := stock.Deduct(balance.FullQty, balance.OpenedQty, product.PackSize, product.IsDivisible, qtySub)
	if err != nil {
		available := stock.TotalSubUnits(balance.FullQty, balance.OpenedQty, product.PackSize)
		return nil, fmt.Errorf("producto %s (disponible %d, solicitado %d): %w",
			product.ID, available, qtySub, err)
	}

	mov := &entity.StockMovement{
		ID:                   uuid.New().String(),
		ProductID:            product.ID,
		StaffID:              staffID,
		Action:               entity.ActionOUT,
		QtyMain:              newFull - balance.FullQty,
		QtySub:               newOpened - balance.OpenedQty,
		Note:                 note,
		RelatedTransactionID: relatedTxID,
		CreatedAt:            now,
	}

	balance.FullQty = newFull
	balance.OpenedQty = newOpened
	balance.UpdatedAt = now
	if err := balanceRepo.Upsert(balance); err != nil {
		return nil, err
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return balance, nil
}

// AdjustInput entrada para bajas/ajustes con deltas firmados directos.
// La referencia de evidencia la exige el caller (handler); el ledger
// garantiza que el total combinado no quede negativo y normaliza OpenedQty
// al rango [0, packSize) vía el modelo de conversión.
type AdjustInput struct {
	ProductID string
	QtyFull   int64 // delta firmado en unidades completas
	QtySub    int64 // delta firmado en sub-unidades
	Reason    entity.MovementAction
	Evidence  string
	Note      string
	StaffID   string
}

// Adjust aplica deltas firmados a ambas cantidades (daño, vencimiento,
// pérdida, reclamo) y registra el asiento con la acción dada como tipo.
func (uc *LedgerUseCase) Adjust(ctx context.Context, in AdjustInput) error {
	if in.ProductID == "" || in.StaffID == "" || (in.QtyFull == 0 && in.QtySub == 0) {
		return domain.ErrInvalidInput
	}
	if !in.Reason.AdjustAction() {
		return fmt.Errorf("acción de ajuste %q: %w", in.Reason, domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if balance == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrProductNotFound)
		}
		available := stock.TotalSubUnits(balance.FullQty, balance.OpenedQty, product.PackSize)
		newFull := balance.FullQty + in.QtyFull
		if newFull < 0 {
			return fmt.Errorf("producto %s (disponible %d): %w", in.ProductID, available, domain.ErrInsufficientStock)
		}
		// El delta de sub-unidades pasa por el modelo de conversión para que
		// OpenedQty quede siempre en [0, packSize): una baja mayor que lo
		// abierto pide prestado a FullQty y un ingreso reempaca el desborde.
		newOpened := balance.OpenedQty
		switch {
		case in.QtySub < 0:
			newFull, newOpened, err = stock.Deduct(newFull, newOpened, product.PackSize, product.IsDivisible, -in.QtySub)
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return fmt.Errorf("producto %s (disponible %d): %w", in.ProductID, available, domain.ErrInsufficientStock)
				}
				return err
			}
		case in.QtySub > 0:
			newFull, newOpened = stock.AddSubUnits(newFull, newOpened, product.PackSize, in.QtySub)
		}
		// El asiento registra el delta efectivo sobre cada campo del saldo
		// (igual que OUT), para que reproducir la tarjeta reconstruya el saldo.
		deltaFull := newFull - balance.FullQty
		deltaOpened := newOpened - balance.OpenedQty
		balance.FullQty = newFull
		balance.OpenedQty = newOpened
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			StaffID:       in.StaffID,
			Action:        in.Reason,
			QtyMain:       deltaFull,
			QtySub:        deltaOpened,
			EvidenceImage: in.Evidence,
			Note:          in.Note,
			CreatedAt:     now,
		})
	})
}

// TransferItem ítem de un traslado, en sub-unidades.
type TransferItem struct {
	ProductID string
	QtySub    int64
}

// TransferInput entrada para un traslado hacia otra sede. El destino es texto
// informativo: este sistema solo registra la salida, no existe recepción
// recíproca en un ledger destino.
type TransferInput struct {
	Items       []TransferItem
	Destination string
	Evidence    string
	StaffID     string
}

// Transfer descuenta cada ítem con el mismo modelo de conversión de una venta
// y registra asientos TRANSFER. Todos los ítems comparten una transacción:
// si alguno no tiene stock, ninguno sale.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) error {
	if len(in.Items) == 0 || in.StaffID == "" || in.Destination == "" {
		return domain.ErrInvalidInput
	}
	products := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.QtySub <= 0 {
			return domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
		}
		products[item.ProductID] = product
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		for _, item := range in.Items {
			product := products[item.ProductID]
			balance, err := balanceRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if balance == nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrProductNotFound)
			}
			newFull, newOpened, err := stock.Deduct(balance.FullQty, balance.OpenedQty, product.PackSize, product.IsDivisible, item.QtySub)
			if err != nil {
				available := stock.TotalSubUnits(balance.FullQty, balance.OpenedQty, product.PackSize)
				return fmt.Errorf("producto %s (disponible %d, solicitado %d): %w",
					item.ProductID, available, item.QtySub, err)
			}
			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				StaffID:       in.StaffID,
				Action:        entity.ActionTRANSFER,
				QtyMain:       newFull - balance.FullQty,
				QtySub:        newOpened - balance.OpenedQty,
				EvidenceImage: in.Evidence,
				Note:          "destino: " + in.Destination,
				CreatedAt:     now,
			}
			balance.FullQty = newFull
			balance.OpenedQty = newOpened
			balance.UpdatedAt = now
			if err := balanceRepo.Upsert(balance); err != nil {
				return err
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReverseForVoid reincorpora qtySub sub-unidades al saldo por anulación de
// venta (reempaque ávido) y registra VOID_RETURN con la venta relacionada.
func (uc *LedgerUseCase) ReverseForVoid(ctx context.Context, productID string, qtySub int64, staffID, relatedTxID string) error {
	if productID == "" || staffID == "" || qtySub <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movRepo repository.StockMovementRepository,
	) error {
		return uc.ReverseForVoidInTx(balanceRepo, movRepo, product, qtySub, staffID, relatedTxID, now)
	})
}

// ReverseForVoidInTx versión para la transacción del caller (coordinador de
// anulación): bloquea la fila, reempaca y asienta VOID_RETURN.
func (uc *LedgerUseCase) ReverseForVoidInTx(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	qtySub int64,
	staffID, relatedTxID string,
	now time.Time,
) error {
	balance, err := balanceRepo.GetForUpdate(product.ID)
	if err != nil {
		return err
	}
	if balance == nil {
		return fmt.Errorf("producto %s: %w", product.ID, domain.ErrProductNotFound)
	}
	newFull, newOpened := stock.AddSubUnits(balance.FullQty, balance.OpenedQty, product.PackSize, qtySub)
	mov := &entity.StockMovement{
		ID:                   uuid.New().String(),
		ProductID:            product.ID,
		StaffID:              staffID,
		Action:               entity.ActionVoidReturn,
		QtyMain:              newFull - balance.FullQty,
		QtySub:               newOpened - balance.OpenedQty,
		RelatedTransactionID: relatedTxID,
		CreatedAt:            now,
	}
	balance.FullQty = newFull
	balance.OpenedQty = newOpened
	balance.UpdatedAt = now
	if err := balanceRepo.Upsert(balance); err != nil {
		return err
	}
	return movRepo.Create(mov)
}

// WriteOffClaimInTx registra el castigo de un reclamo: asiento ADJUST_CLAIM
// con delta negativo en sub-unidades y referencia a la venta, sin tocar el
// saldo (el OUT de la venta original ya lo descontó y la mercancía no es
// revendible).
func (uc *LedgerUseCase) WriteOffClaimInTx(
	movRepo repository.StockMovementRepository,
	productID string,
	qtySub int64,
	staffID, relatedTxID string,
	now time.Time,
) error {
	return movRepo.Create(&entity.StockMovement{
		ID:                   uuid.New().String(),
		ProductID:            productID,
		StaffID:              staffID,
		Action:               entity.ActionAdjustClaim,
		QtyMain:              0,
		QtySub:               -qtySub,
		RelatedTransactionID: relatedTxID,
		CreatedAt:            now,
	})
}

// GetBalance lectura del saldo actual (nil si el producto no tiene inventario).
func (uc *LedgerUseCase) GetBalance(ctx context.Context, productID string) (*entity.InventoryBalance, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balanceRepo.Get(productID)
}

// ListMovements tarjeta de stock de un producto (lectura pura para reportes).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
