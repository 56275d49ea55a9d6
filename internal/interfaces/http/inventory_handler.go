package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/catalog"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/dto"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/stock"
)

// InventoryHandler maneja las peticiones HTTP del ledger de stock (protegido).
type InventoryHandler struct {
	ledger   *inventory.LedgerUseCase
	products *catalog.ProductUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, products *catalog.ProductUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, products: products}
}

// mapLedgerError traduce los sentinelas del ledger a una respuesta HTTP.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Receive godoc
// @Summary      Recepción de compra (unidades completas)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "product_id, qty_full, lote/vencimiento opcionales"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledger.ReceiveStock(c.Context(), inventory.ReceiveStockInput{
		ProductID:  in.ProductID,
		QtyFull:    in.QtyFull,
		LotNumber:  in.LotNumber,
		ExpiryDate: in.ExpiryDate,
		Evidence:   in.Evidence,
		Note:       in.Note,
		StaffID:    staffID,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "recepción registrada"})
}

// Adjust godoc
// @Summary      Ajuste/baja de inventario con evidencia
// @Description  Aplica deltas firmados por daño, vencimiento, pérdida o
//
//	reclamo. La referencia de evidencia es obligatoria.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, qty_full/qty_sub firmados, reason, evidence"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// La evidencia la exige la interfaz, no el ledger
	if in.Evidence == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "referencia de evidencia requerida"})
	}
	reason := entity.MovementAction(in.Reason)
	if !reason.AdjustAction() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason debe ser ADJUST_DAMAGED, ADJUST_EXPIRED, ADJUST_LOST o ADJUST_CLAIM"})
	}
	err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
		ProductID: in.ProductID,
		QtyFull:   in.QtyFull,
		QtySub:    in.QtySub,
		Reason:    reason,
		Evidence:  in.Evidence,
		Note:      in.Note,
		StaffID:   staffID,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// Transfer godoc
// @Summary      Traslado hacia otra sede (todo-o-nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "items[] en sub-unidades + destination"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.TransferItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, inventory.TransferItem{ProductID: item.ProductID, QtySub: item.QtySub})
	}
	err := h.ledger.Transfer(c.Context(), inventory.TransferInput{
		Items:       items,
		Destination: in.Destination,
		Evidence:    in.Evidence,
		StaffID:     staffID,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// GetBalance godoc
// @Summary      Saldo actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "Product ID (UUID)"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/{product_id} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	product, err := h.products.Get(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	balance, err := h.ledger.GetBalance(c.Context(), productID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	resp := dto.BalanceResponse{
		ProductID: productID,
		MainUnit:  product.MainUnit,
		SubUnit:   product.SubUnit,
	}
	// Sin fila de saldo el producto aún no recibe inventario: saldo cero
	if balance != nil {
		resp.FullQty = balance.FullQty
		resp.OpenedQty = balance.OpenedQty
		resp.TotalSubUnits = stock.TotalSubUnits(balance.FullQty, balance.OpenedQty, product.PackSize)
	}
	return c.JSON(resp)
}

// ListMovements godoc
// @Summary      Tarjeta de stock (kardex) de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "Product ID (UUID)"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Param        limit       query  int     false  "Máx resultados (default 50)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = &t
	}
	movements, err := h.ledger.ListMovements(c.Context(), productID, from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return mapLedgerError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:                   m.ID,
			ProductID:            m.ProductID,
			StaffID:              m.StaffID,
			Action:               string(m.Action),
			QtyMain:              m.QtyMain,
			QtySub:               m.QtySub,
			LotNumber:            m.LotNumber,
			ExpiryDate:           m.ExpiryDate,
			Note:                 m.Note,
			RelatedTransactionID: m.RelatedTransactionID,
			CreatedAt:            m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
