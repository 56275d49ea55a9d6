package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/dto"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/sales"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

const testStaffID = "00000000-0000-0000-0000-0000000000aa"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newLedger arma el ledger real sobre los fakes: las ventas ejercitan la
// deducción de stock verdadera, no un stub.
func newLedger(store *memStore) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(
		nil, // las variantes InTx no usan el runner propio
		&fakeProductRepo{store: store},
		&fakeMovementRepo{store: store},
		&fakeBalanceRepo{store: store},
	)
}

func newEngine(store *memStore) *sales.EngineUseCase {
	return sales.NewEngineUseCase(
		&fakeSalesTxRunner{store: store},
		newLedger(store),
		&fakeProductRepo{store: store},
		&fakeTransactionRepo{store: store},
		&fakePaymentRepo{store: store},
	)
}

// seedProduct registra un producto con precios por sub-unidad y su saldo.
func seedProduct(store *memStore, id string, packSize int64, divisible bool, full, opened int64, stdPrice, staffPrice string) {
	store.products[id] = &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		PackSize:      packSize,
		IsDivisible:   divisible,
		MainUnit:      "frasco",
		SubUnit:       "cc",
		StandardPrice: d(stdPrice),
		StaffPrice:    d(staffPrice),
	}
	store.balances[id] = &entity.InventoryBalance{ProductID: id, FullQty: full, OpenedQty: opened}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateTransaction
// ──────────────────────────────────────────────────────────────────────────────

// Checkout completo con pago dividido: 5 cc a $100 pagados 300 en efectivo y
// 200 por transferencia quedan PAID, el stock abre un frasco y el asiento OUT
// referencia la venta.
func TestCreateTransaction_CheckoutConPagoDividido(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3, "100", "70")
	uc := newEngine(store)

	resp, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 5}},
		Payments: []dto.SalePaymentRequest{
			{Method: entity.PaymentMethodCash, Amount: d("300")},
			{Method: entity.PaymentMethodTransfer, Amount: d("200")},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d("500")))
	assert.True(t, resp.NetAmount.Equal(d("500")))
	assert.True(t, resp.RemainingBalance.IsZero())
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, entity.TxStatusCompleted, resp.Status)
	assert.Equal(t, entity.ChannelWalkIn, resp.Channel, "canal por defecto")
	require.Len(t, resp.Payments, 2)

	// Stock: los 3 cc abiertos + 2 de un frasco nuevo
	balance := store.balances["p1"]
	assert.Equal(t, int64(1), balance.FullQty)
	assert.Equal(t, int64(8), balance.OpenedQty)

	// El asiento OUT queda atado a la venta
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.ActionOUT, store.movements[0].Action)
	assert.Equal(t, resp.ID, store.movements[0].RelatedTransactionID)

	// Cabecera y líneas persistidas
	require.Contains(t, store.transactions, resp.ID)
	require.Len(t, store.items[resp.ID], 1)
}

// Si una línea no tiene stock, NADA queda persistido: ni cabecera, ni líneas,
// ni pagos, ni deducciones de las líneas anteriores.
func TestCreateTransaction_SinStockRevierteTodo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	seedProduct(store, "p2", 10, true, 2, 3, "50", "30")
	uc := newEngine(store)

	_, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", QtyUsed: 10},
			{ProductID: "p2", QtyUsed: 25}, // disponible: 23
		},
		Payments: []dto.SalePaymentRequest{{Method: entity.PaymentMethodCash, Amount: d("1000")}},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "p2", "el error identifica el producto sin stock")

	assert.Empty(t, store.transactions)
	assert.Empty(t, store.items)
	assert.Empty(t, store.payments)
	assert.Empty(t, store.movements)
	assert.Equal(t, int64(5), store.balances["p1"].FullQty, "la deducción de p1 se revirtió")
	assert.Equal(t, int64(2), store.balances["p2"].FullQty)
}

// Precio en cero se resuelve según el canal: STAFF usa staff_price, el resto
// el precio estándar.
func TestCreateTransaction_PrecioSegunCanal(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)

	resp, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Channel: entity.ChannelStaff,
		Items:   []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 2}},
	})

	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d("140")), "2 cc a precio de personal")
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(d("70")))
}

// Sin pagos la venta queda UNPAID con el neto completo como saldo.
func TestCreateTransaction_SinPagosQuedaUNPAID(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)

	resp, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		CustomerID: "cliente-9",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus)
	assert.True(t, resp.RemainingBalance.Equal(d("300")))
}

// Pago parcial en el checkout: estado PARTIAL y saldo por la diferencia.
func TestCreateTransaction_PagoParcial(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)

	resp, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 5}},
		Payments: []dto.SalePaymentRequest{{Method: entity.PaymentMethodDeposit, Amount: d("200")}},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, resp.RemainingBalance.Equal(d("300")))
}

// El descuento se aplica sin validar contra el total: un descuento mayor al
// total deja neto negativo que se persiste como PAID con saldo cero.
func TestCreateTransaction_DescuentoMayorAlTotal(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)

	resp, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Discount: d("600"),
		Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 5}},
	})

	require.NoError(t, err)
	assert.True(t, resp.NetAmount.Equal(d("-100")))
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.RemainingBalance.IsZero())
}

func TestCreateTransaction_Validaciones(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateTransactionRequest
	}{
		{"sin items", dto.CreateTransactionRequest{}},
		{"cantidad cero", dto.CreateTransactionRequest{
			Items: []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 0}},
		}},
		{"descuento negativo", dto.CreateTransactionRequest{
			Discount: d("-1"),
			Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 1}},
		}},
		{"método de pago desconocido", dto.CreateTransactionRequest{
			Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 1}},
			Payments: []dto.SalePaymentRequest{{Method: "CHEQUE", Amount: d("10")}},
		}},
		{"pago negativo", dto.CreateTransactionRequest{
			Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 1}},
			Payments: []dto.SalePaymentRequest{{Method: entity.PaymentMethodCash, Amount: d("-10")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateTransaction(ctx, testStaffID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.transactions, "ninguna validación fallida persiste nada")
}

func TestCreateTransaction_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)

	_, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items: []dto.SaleItemRequest{{ProductID: "fantasma", QtyUsed: 1}},
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransaction_DevuelveLineasYPagos(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	uc := newEngine(store)

	created, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items:    []dto.SaleItemRequest{{ProductID: "p1", QtyUsed: 2}},
		Payments: []dto.SalePaymentRequest{{Method: entity.PaymentMethodCash, Amount: d("200")}},
	})
	require.NoError(t, err)

	got, err := uc.GetTransaction(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus)
}

func TestGetTransaction_Inexistente(t *testing.T) {
	store := newMemStore()
	uc := newEngine(store)

	_, err := uc.GetTransaction(context.Background(), "fantasma")

	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

// Las líneas conservan el orden en que se vendieron (line_no desde 1), tanto
// en la respuesta del checkout como al releer la venta.
func TestGetTransaction_LineasEnOrdenDeVenta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0, "100", "70")
	seedProduct(store, "p2", 6, false, 5, 0, "50", "30")
	seedProduct(store, "p3", 10, true, 5, 0, "20", "10")
	uc := newEngine(store)

	created, err := uc.CreateTransaction(context.Background(), testStaffID, dto.CreateTransactionRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p3", QtyUsed: 1},
			{ProductID: "p1", QtyUsed: 2},
			{ProductID: "p2", QtyUsed: 3},
		},
	})
	require.NoError(t, err)

	got, err := uc.GetTransaction(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	wantProducts := []string{"p3", "p1", "p2"}
	for i, item := range got.Items {
		assert.Equal(t, i+1, item.LineNo)
		assert.Equal(t, wantProducts[i], item.ProductID)
	}
}
