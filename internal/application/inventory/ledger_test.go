package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
)

const testStaffID = "00000000-0000-0000-0000-0000000000aa"

// newLedger arma el caso de uso sobre fakes en memoria.
func newLedger(store *memStore) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeMovementRepo{store: store},
		&fakeBalanceRepo{store: store},
	)
}

// seedProduct registra un producto y opcionalmente su saldo inicial.
func seedProduct(store *memStore, id string, packSize int64, divisible bool, full, opened int64) {
	store.products[id] = &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		PackSize:      packSize,
		IsDivisible:   divisible,
		MainUnit:      "frasco",
		SubUnit:       "cc",
		StandardPrice: decimal.NewFromInt(100),
		StaffPrice:    decimal.NewFromInt(70),
	}
	if full != 0 || opened != 0 {
		store.balances[id] = &entity.InventoryBalance{ProductID: id, FullQty: full, OpenedQty: opened}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_CreaSaldoYAsiento(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 0)
	uc := newLedger(store)

	err := uc.ReceiveStock(context.Background(), inventory.ReceiveStockInput{
		ProductID: "p1",
		QtyFull:   5,
		LotNumber: "L-2026-08",
		StaffID:   testStaffID,
	})

	require.NoError(t, err)
	balance := store.balances["p1"]
	require.NotNil(t, balance, "la recepción debe crear la fila de saldo")
	assert.Equal(t, int64(5), balance.FullQty)
	assert.Equal(t, int64(0), balance.OpenedQty)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.ActionIN, mov.Action)
	assert.Equal(t, int64(5), mov.QtyMain)
	assert.Equal(t, "L-2026-08", mov.LotNumber)
	assert.Equal(t, testStaffID, mov.StaffID)
}

func TestReceiveStock_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newLedger(store)

	err := uc.ReceiveStock(context.Background(), inventory.ReceiveStockInput{
		ProductID: "fantasma",
		QtyFull:   1,
		StaffID:   testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

func TestReceiveStock_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 0)
	uc := newLedger(store)

	err := uc.ReceiveStock(context.Background(), inventory.ReceiveStockInput{
		ProductID: "p1",
		QtyFull:   0,
		StaffID:   testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeductForUsage
// ──────────────────────────────────────────────────────────────────────────────

// 2 frascos + 3 cc abiertos (pack 10), salen 5 cc: se consumen los 3 abiertos
// y se abre un frasco. Queda 1 frasco + 8 cc y el asiento OUT registra los
// deltas de ambos campos.
func TestDeductForUsage_AbreFrasco(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3)
	uc := newLedger(store)

	balance, err := uc.DeductForUsage(context.Background(), "p1", 5, testStaffID, "aplicación botox")

	require.NoError(t, err)
	assert.Equal(t, int64(1), balance.FullQty)
	assert.Equal(t, int64(8), balance.OpenedQty)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.ActionOUT, mov.Action)
	assert.Equal(t, int64(-1), mov.QtyMain)
	assert.Equal(t, int64(5), mov.QtySub)
	assert.Equal(t, "aplicación botox", mov.Note)
}

// Sin stock suficiente nada cambia: ni saldo ni asientos (rollback).
func TestDeductForUsage_InsuficienteRevierteTodo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3)
	uc := newLedger(store)

	_, err := uc.DeductForUsage(context.Background(), "p1", 25, testStaffID, "")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 23")
	assert.Contains(t, err.Error(), "solicitado 25")

	balance := store.balances["p1"]
	assert.Equal(t, int64(2), balance.FullQty)
	assert.Equal(t, int64(3), balance.OpenedQty)
	assert.Empty(t, store.movements)
}

// Producto registrado pero sin fila de saldo: nunca recibió inventario.
func TestDeductForUsage_SinSaldoInicial(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 0)
	uc := newLedger(store)

	_, err := uc.DeductForUsage(context.Background(), "p1", 1, testStaffID, "")

	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_BajaPorDanio(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 4)
	uc := newLedger(store)

	err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p1",
		QtyFull:   -1,
		QtySub:    -2,
		Reason:    entity.ActionAdjustDamaged,
		Evidence:  "img://rotura-001.jpg",
		StaffID:   testStaffID,
	})

	require.NoError(t, err)
	balance := store.balances["p1"]
	assert.Equal(t, int64(4), balance.FullQty)
	assert.Equal(t, int64(2), balance.OpenedQty)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.ActionAdjustDamaged, mov.Action)
	assert.Equal(t, int64(-1), mov.QtyMain)
	assert.Equal(t, int64(-2), mov.QtySub)
	assert.Equal(t, "img://rotura-001.jpg", mov.EvidenceImage)
}

// Solo las acciones de ajuste sirven como motivo: OUT o IN directos no.
func TestAdjust_RechazaAccionQueNoEsAjuste(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0)
	uc := newLedger(store)

	err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p1",
		QtyFull:   -1,
		Reason:    entity.ActionOUT,
		Evidence:  "img://x.jpg",
		StaffID:   testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_NoDejaSaldoNegativo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 1, 0)
	uc := newLedger(store)

	err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p1",
		QtyFull:   -2,
		Reason:    entity.ActionAdjustLost,
		Evidence:  "img://x.jpg",
		StaffID:   testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), store.balances["p1"].FullQty)
	assert.Empty(t, store.movements)
}

// El delta de sub-unidades se normaliza con el modelo de conversión: una baja
// mayor que lo abierto abre un frasco y un ingreso reempaca, de modo que
// OpenedQty queda siempre en [0, packSize).
func TestAdjust_NormalizaDeltaDeSubUnidades(t *testing.T) {
	cases := []struct {
		name        string
		packSize    int64
		divisible   bool
		full        int64
		opened      int64
		qtySub      int64
		wantFull    int64
		wantOpened  int64
		wantMovMain int64
		wantMovSub  int64
	}{
		{"baja mayor que lo abierto abre un frasco", 10, true, 5, 0, -2, 4, 8, -1, 8},
		{"baja exacta de lo abierto", 10, true, 5, 3, -3, 5, 0, 0, -3},
		{"ingreso con desborde reempaca", 10, true, 2, 3, 12, 3, 5, 1, 2},
		{"ingreso de un pack completo", 10, true, 2, 0, 10, 3, 0, 1, 0},
		{"no divisible re-deriva el agregado", 6, false, 2, 1, -3, 1, 4, -1, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			seedProduct(store, "p1", tc.packSize, tc.divisible, tc.full, tc.opened)
			uc := newLedger(store)

			err := uc.Adjust(context.Background(), inventory.AdjustInput{
				ProductID: "p1",
				QtySub:    tc.qtySub,
				Reason:    entity.ActionAdjustLost,
				Evidence:  "img://x.jpg",
				StaffID:   testStaffID,
			})

			require.NoError(t, err)
			balance := store.balances["p1"]
			assert.Equal(t, tc.wantFull, balance.FullQty)
			assert.Equal(t, tc.wantOpened, balance.OpenedQty)
			assert.GreaterOrEqual(t, balance.OpenedQty, int64(0))
			assert.Less(t, balance.OpenedQty, tc.packSize)

			// El asiento registra el delta efectivo sobre cada campo del saldo
			require.Len(t, store.movements, 1)
			assert.Equal(t, tc.wantMovMain, store.movements[0].QtyMain)
			assert.Equal(t, tc.wantMovSub, store.movements[0].QtySub)
		})
	}
}

// Tras una baja que abre un frasco (saldo 4/8), una venta posterior debe
// poder descontar con normalidad.
func TestAdjust_BajaDeSubUnidadesNoBloqueaVentas(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 5, 0)
	uc := newLedger(store)

	err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p1",
		QtySub:    -2,
		Reason:    entity.ActionAdjustDamaged,
		Evidence:  "img://derrame-002.jpg",
		StaffID:   testStaffID,
	})
	require.NoError(t, err)

	_, err = uc.DeductForUsage(context.Background(), "p1", 1, testStaffID, "")
	require.NoError(t, err)
	balance := store.balances["p1"]
	assert.Equal(t, int64(4), balance.FullQty)
	assert.Equal(t, int64(7), balance.OpenedQty)
}

func TestAdjust_BajaDeSubUnidadesSinSaldoSuficiente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 3)
	uc := newLedger(store)

	err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p1",
		QtySub:    -4,
		Reason:    entity.ActionAdjustExpired,
		Evidence:  "img://x.jpg",
		StaffID:   testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 3")
	assert.Equal(t, int64(3), store.balances["p1"].OpenedQty)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_DescuentaYRegistraDestino(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3)
	seedProduct(store, "p2", 6, false, 1, 2)
	uc := newLedger(store)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		Items: []inventory.TransferItem{
			{ProductID: "p1", QtySub: 5},
			{ProductID: "p2", QtySub: 4},
		},
		Destination: "Sede Norte",
		StaffID:     testStaffID,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), store.balances["p1"].FullQty)
	assert.Equal(t, int64(8), store.balances["p1"].OpenedQty)
	assert.Equal(t, int64(0), store.balances["p2"].FullQty)
	assert.Equal(t, int64(4), store.balances["p2"].OpenedQty)

	require.Len(t, store.movements, 2)
	for _, mov := range store.movements {
		assert.Equal(t, entity.ActionTRANSFER, mov.Action)
		assert.Equal(t, "destino: Sede Norte", mov.Note)
	}
}

// Si un ítem del traslado no tiene stock, ningún ítem sale (todo-o-nada).
func TestTransfer_TodoONada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3)
	seedProduct(store, "p2", 6, false, 0, 2)
	uc := newLedger(store)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		Items: []inventory.TransferItem{
			{ProductID: "p1", QtySub: 5},
			{ProductID: "p2", QtySub: 10},
		},
		Destination: "Sede Norte",
		StaffID:     testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), store.balances["p1"].FullQty)
	assert.Equal(t, int64(3), store.balances["p1"].OpenedQty)
	assert.Equal(t, int64(2), store.balances["p2"].OpenedQty)
	assert.Empty(t, store.movements)
}

func TestTransfer_DestinoRequerido(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 2, 3)
	uc := newLedger(store)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		Items:   []inventory.TransferItem{{ProductID: "p1", QtySub: 1}},
		StaffID: testStaffID,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReverseForVoid
// ──────────────────────────────────────────────────────────────────────────────

// El retorno reempaca con avidez: 8 cc abiertos + 15 cc devueltos con pack de
// 10 quedan como 2 frascos + 3 cc.
func TestReverseForVoid_ReempacaYReferencia(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 8)
	uc := newLedger(store)

	err := uc.ReverseForVoid(context.Background(), "p1", 15, testStaffID, "tx-77")

	require.NoError(t, err)
	balance := store.balances["p1"]
	assert.Equal(t, int64(2), balance.FullQty)
	assert.Equal(t, int64(3), balance.OpenedQty)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.ActionVoidReturn, mov.Action)
	assert.Equal(t, "tx-77", mov.RelatedTransactionID)
	assert.Equal(t, int64(2), mov.QtyMain)
	assert.Equal(t, int64(-5), mov.QtySub)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBalance_SinFilaDevuelveNil(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 0)
	uc := newLedger(store)

	balance, err := uc.GetBalance(context.Background(), "p1")

	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, true, 0, 0)
	seedProduct(store, "p2", 10, true, 0, 0)
	uc := newLedger(store)

	require.NoError(t, uc.ReceiveStock(context.Background(), inventory.ReceiveStockInput{
		ProductID: "p1", QtyFull: 3, StaffID: testStaffID,
	}))
	require.NoError(t, uc.ReceiveStock(context.Background(), inventory.ReceiveStockInput{
		ProductID: "p2", QtyFull: 1, StaffID: testStaffID,
	}))

	movements, err := uc.ListMovements(context.Background(), "p1", nil, nil, 50, 0)

	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "p1", movements[0].ProductID)
}
