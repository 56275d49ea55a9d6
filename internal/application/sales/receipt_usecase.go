package sales

import (
	"context"
	"fmt"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// ReceiptUseCase genera el recibo imprimible (PDF) de una venta.
type ReceiptUseCase struct {
	txRepo      repository.TransactionRepository
	payRepo     repository.PaymentLogRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
	clinic      ClinicInfo
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentLogRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
	clinic ClinicInfo,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRepo:      txRepo,
		payRepo:     payRepo,
		productRepo: productRepo,
		generator:   generator,
		clinic:      clinic,
	}
}

// DownloadReceiptPDF carga venta, líneas y pagos, enriquece cada línea con el
// nombre del producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)      si todo sale bien.
//   - domain.ErrTransactionNotFound  si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, transactionID string) (pdfBytes []byte, filename string, err error) {
	tx, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if tx == nil {
		return nil, "", fmt.Errorf("transacción %s: %w", transactionID, domain.ErrTransactionNotFound)
	}

	rawItems, err := uc.txRepo.GetItems(transactionID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}
	items := make([]ReceiptItem, 0, len(rawItems))
	for _, item := range rawItems {
		name := "Producto " + item.ProductID // fallback
		subUnit := ""
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			name = product.Name
			subUnit = product.SubUnit
		}
		items = append(items, ReceiptItem{
			TransactionItem: *item,
			ProductName:     name,
			SubUnit:         subUnit,
		})
	}

	payments, err := uc.payRepo.ListByTransaction(transactionID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener pagos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, &ReceiptData{
		Clinic:      uc.clinic,
		Transaction: tx,
		Items:       items,
		Payments:    payments,
	})
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("recibo_%s.pdf", tx.ID)
	return pdfBytes, filename, nil
}
