package inventory_test

import (
	"context"
	"time"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner toma un snapshot antes de ejecutar fn y lo
// restaura si fn falla, reproduciendo la semántica Commit/Rollback de la BD.
// Los repos devuelven copias, como lo haría un driver real: mutar el resultado
// de un Get sin Upsert no toca el almacén.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	balances  map[string]*entity.InventoryBalance
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		balances: make(map[string]*entity.InventoryBalance),
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
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.balances = snap.balances
	s.movements = snap.movements
}

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
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
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

type fakeTxRunner struct{ store *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&fakeBalanceRepo{store: r.store}, &fakeMovementRepo{store: r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}
