package sales_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner toma un snapshot del almacén completo antes de
// ejecutar fn y lo restaura si fn falla: así los tests verifican la semántica
// todo-o-nada (inventario + venta + pagos) sin una BD real. Los repos
// devuelven copias, como lo haría el driver.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	balances     map[string]*entity.InventoryBalance
	movements    []*entity.StockMovement
	transactions map[string]*entity.Transaction
	items        map[string][]*entity.TransactionItem
	payments     []*entity.PaymentLog
}

func newMemStore() *memStore {
	return &memStore{
		products:     make(map[string]*entity.Product),
		balances:     make(map[string]*entity.InventoryBalance),
		transactions: make(map[string]*entity.Transaction),
		items:        make(map[string][]*entity.TransactionItem),
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, b := range s.balances {
		cp := *b
		snap.balances[id] = &cp
	}
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	for id, tx := range s.transactions {
		cp := *tx
		snap.transactions[id] = &cp
	}
	for id, list := range s.items {
		snap.items[id] = append([]*entity.TransactionItem(nil), list...)
	}
	snap.payments = append([]*entity.PaymentLog(nil), s.payments...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.balances = snap.balances
	s.movements = snap.movements
	s.transactions = snap.transactions
	s.items = snap.items
	s.payments = snap.payments
}

// ── repos de inventario ───────────────────────────────────────────────────────

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeBalanceRepo struct{ store *memStore }

func (r *fakeBalanceRepo) Get(productID string) (*entity.InventoryBalance, error) {
	b, ok := r.store.balances[productID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBalanceRepo) GetForUpdate(productID string) (*entity.InventoryBalance, error) {
	return r.Get(productID)
}

func (r *fakeBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	cp := *balance
	r.store.balances[balance.ProductID] = &cp
	return nil
}

type fakeMovementRepo struct{ store *memStore }

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.RelatedTransactionID == transactionID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── repos de ventas ───────────────────────────────────────────────────────────

type fakeTransactionRepo struct{ store *memStore }

func (r *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	cp := *tx
	r.store.transactions[tx.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) CreateItem(item *entity.TransactionItem) error {
	cp := *item
	r.store.items[item.TransactionID] = append(r.store.items[item.TransactionID], &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return r.GetByID(id)
}

func (r *fakeTransactionRepo) GetItems(transactionID string) ([]*entity.TransactionItem, error) {
	list := r.store.items[transactionID]
	out := make([]*entity.TransactionItem, 0, len(list))
	for _, item := range list {
		cp := *item
		out = append(out, &cp)
	}
	// Mismo orden que el repositorio real: por número de línea
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, nil
}

func (r *fakeTransactionRepo) UpdateSettlement(id, paymentStatus string, remaining decimal.Decimal) error {
	tx := r.store.transactions[id]
	tx.PaymentStatus = paymentStatus
	tx.RemainingBalance = remaining
	return nil
}

func (r *fakeTransactionRepo) MarkVoided(id, reason, staffID string) error {
	tx := r.store.transactions[id]
	tx.Status = entity.TxStatusVoided
	tx.VoidReason = reason
	tx.VoidedBy = staffID
	return nil
}

func (r *fakeTransactionRepo) ListDebtors(limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.store.transactions {
		if tx.Status != entity.TxStatusVoided && tx.RemainingBalance.GreaterThan(decimal.Zero) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RemainingBalance.GreaterThan(out[j].RemainingBalance)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePaymentRepo struct{ store *memStore }

func (r *fakePaymentRepo) Create(payment *entity.PaymentLog) error {
	cp := *payment
	r.store.payments = append(r.store.payments, &cp)
	return nil
}

func (r *fakePaymentRepo) ListByTransaction(transactionID string) ([]*entity.PaymentLog, error) {
	var out []*entity.PaymentLog
	for _, p := range r.store.payments {
		if p.TransactionID == transactionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByTransaction(transactionID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.TransactionID == transactionID {
			sum = sum.Add(p.AmountPaid)
		}
	}
	return sum, nil
}

// ── runner ────────────────────────────────────────────────────────────────────

type fakeSalesTxRunner struct{ store *memStore }

func (r *fakeSalesTxRunner) RunSales(ctx context.Context, fn func(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
	txRepo repository.TransactionRepository,
	payRepo repository.PaymentLogRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(
		&fakeBalanceRepo{store: r.store},
		&fakeMovementRepo{store: r.store},
		&fakeTransactionRepo{store: r.store},
		&fakePaymentRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}
