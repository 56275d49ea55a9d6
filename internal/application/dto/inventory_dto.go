package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest recepción de compra (unidades completas).
type ReceiveStockRequest struct {
	ProductID  string     `json:"product_id"`
	QtyFull    int64      `json:"qty_full"`
	LotNumber  string     `json:"lot_number"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Evidence   string     `json:"evidence"`
	Note       string     `json:"note"`
}

// AdjustStockRequest baja/ajuste con deltas firmados. Reason debe ser una de
// ADJUST_DAMAGED, ADJUST_EXPIRED, ADJUST_LOST, ADJUST_CLAIM y la referencia de
// evidencia es obligatoria.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	QtyFull   int64  `json:"qty_full"`
	QtySub    int64  `json:"qty_sub"`
	Reason    string `json:"reason"`
	Evidence  string `json:"evidence"`
	Note      string `json:"note"`
}

// TransferItemRequest ítem de traslado, en sub-unidades.
type TransferItemRequest struct {
	ProductID string `json:"product_id"`
	QtySub    int64  `json:"qty_sub"`
}

// TransferStockRequest traslado hacia otra sede (solo salida; el destino es texto).
type TransferStockRequest struct {
	Items       []TransferItemRequest `json:"items"`
	Destination string                `json:"destination"`
	Evidence    string                `json:"evidence"`
}

// BalanceResponse saldo actual de un producto.
type BalanceResponse struct {
	ProductID     string `json:"product_id"`
	FullQty       int64  `json:"full_qty"`
	OpenedQty     int64  `json:"opened_qty"`
	TotalSubUnits int64  `json:"total_sub_units"`
	MainUnit      string `json:"main_unit"`
	SubUnit       string `json:"sub_unit"`
}

// MovementResponse asiento de la tarjeta de stock.
type MovementResponse struct {
	ID                   string     `json:"id"`
	ProductID            string     `json:"product_id"`
	StaffID              string     `json:"staff_id"`
	Action               string     `json:"action"`
	QtyMain              int64      `json:"qty_main"`
	QtySub               int64      `json:"qty_sub"`
	LotNumber            string     `json:"lot_number,omitempty"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	Note                 string     `json:"note,omitempty"`
	RelatedTransactionID string     `json:"related_transaction_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CreateProductRequest alta mínima de producto (los precios son por sub-unidad).
type CreateProductRequest struct {
	Name          string          `json:"name"`
	PackSize      int64           `json:"pack_size"`
	IsDivisible   bool            `json:"is_divisible"`
	MainUnit      string          `json:"main_unit"`
	SubUnit       string          `json:"sub_unit"`
	StandardPrice decimal.Decimal `json:"standard_price"`
	StaffPrice    decimal.Decimal `json:"staff_price"`
}
