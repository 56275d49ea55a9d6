package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/dto"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/sales"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

// SalesHandler maneja las peticiones HTTP de ventas, deudas y anulación (protegido).
type SalesHandler struct {
	engine  *sales.EngineUseCase
	voidUC  *sales.VoidUseCase
	receipt *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(engine *sales.EngineUseCase, voidUC *sales.VoidUseCase, receipt *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{engine: engine, voidUC: voidUC, receipt: receipt}
}

// mapSalesError traduce los sentinelas del motor de ventas a una respuesta HTTP.
func mapSalesError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrTransactionNotFound), errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrOverpayment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyVoided):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_VOIDED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Checkout de una venta (descuenta inventario, pago dividido)
// @Description  Crea la venta, descuenta stock por cada línea y registra los
//
//	pagos iniciales en una sola transacción: si una línea no tiene
//	stock, nada queda persistido.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "items[], payments[], channel, discount"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.CreateTransaction(c.Context(), staffID, in)
	if err != nil {
		return mapSalesError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// GetByID godoc
// @Summary      Obtener una venta con líneas y pagos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transaction ID (UUID)"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	tx, err := h.engine.GetTransaction(c.Context(), id)
	if err != nil {
		return mapSalesError(c, err)
	}
	return c.JSON(tx)
}

// DownloadReceipt godoc
// @Summary      Recibo de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Transaction ID (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) DownloadReceipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), id)
	if err != nil {
		return mapSalesError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Void godoc
// @Summary      Anular una venta
// @Description  BOOKING_CANCEL retorna el stock consumido (VOID_RETURN);
//
//	CLAIM castiga el producto ya aplicado sin retornarlo
//	(ADJUST_CLAIM). Idempotencia: la segunda anulación falla.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Transaction ID (UUID)"
// @Param        body  body  dto.VoidTransactionRequest  true  "reason: BOOKING_CANCEL | CLAIM"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/void [post]
func (h *SalesHandler) Void(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.VoidTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.voidUC.VoidTransaction(c.Context(), id, entity.VoidReason(in.Reason), staffID); err != nil {
		return mapSalesError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta anulada"})
}

// PayDebt godoc
// @Summary      Abono contra el saldo de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Transaction ID (UUID)"
// @Param        body  body  dto.PayDebtRequest  true  "amount, method"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *SalesHandler) PayDebt(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	if staffID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.PayDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	settlement, err := h.engine.PayDebt(c.Context(), id, staffID, in)
	if err != nil {
		return mapSalesError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(settlement)
}

// ListDebtors godoc
// @Summary      Ventas con saldo pendiente, por saldo descendente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máx resultados (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.DebtorResponse
// @Router       /api/sales/debtors [get]
func (h *SalesHandler) ListDebtors(c *fiber.Ctx) error {
	debtors, err := h.engine.ListDebtors(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return mapSalesError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(debtors), "debtors": debtors})
}
