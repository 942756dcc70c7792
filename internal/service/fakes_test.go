package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"inventorypulse/internal/model"
)

// In-memory stores for exercising the services without a database. The
// inventory fake holds one mutex across the whole adjustment, standing in for
// the row lock the real store takes.

type fakeProductStore struct {
	mu       sync.Mutex
	nextID   uint
	products map[uint]model.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[uint]model.Product)}
}

func (f *fakeProductStore) List(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(), nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProductStore) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == sku && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductStore) Exists(ctx context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.products[id]
	return ok, nil
}

func (f *fakeProductStore) Search(ctx context.Context, query string) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := strings.ToLower(query)
	var matched []model.Product
	for _, p := range f.sorted() {
		if strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeProductStore) LowStock(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.Product
	for _, p := range f.sorted() {
		if p.Stock <= p.ReorderThreshold {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeProductStore) Create(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Save(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

func (f *fakeProductStore) sorted() []model.Product {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeInventoryStore struct {
	mu       sync.Mutex
	products *fakeProductStore
	nextID   uint
	entries  []model.InventoryTransaction
}

func newFakeInventoryStore(products *fakeProductStore) *fakeInventoryStore {
	return &fakeInventoryStore{products: products}
}

func (f *fakeInventoryStore) HasExternalReference(ctx context.Context, ref string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasReferenceLocked(ref), nil
}

func (f *fakeInventoryStore) hasReferenceLocked(ref string) bool {
	for _, e := range f.entries {
		if e.ExternalReference != nil && *e.ExternalReference == ref {
			return true
		}
	}
	return false
}

func (f *fakeInventoryStore) RecentForProduct(ctx context.Context, productID uint, limit int) ([]model.InventoryTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.InventoryTransaction
	for i := len(f.entries) - 1; i >= 0 && len(matched) < limit; i-- {
		if f.entries[i].ProductID == productID {
			matched = append(matched, f.entries[i])
		}
	}
	return matched, nil
}

func (f *fakeInventoryStore) AdjustStock(ctx context.Context, productID uint, fn AdjustFunc) (*model.InventoryTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, err := f.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	entry, err := fn(product)
	if err != nil {
		return nil, err
	}

	if entry.ExternalReference != nil && f.hasReferenceLocked(*entry.ExternalReference) {
		return nil, ErrDuplicateReference
	}

	if err := f.products.Save(ctx, product); err != nil {
		return nil, err
	}

	f.nextID++
	entry.ID = f.nextID
	entry.ProductID = product.ID
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return entry, nil
}

type fakeAlertStore struct {
	mu     sync.Mutex
	nextID uint
	alerts []model.Alert
}

func (f *fakeAlertStore) Create(ctx context.Context, alert *model.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	alert.ID = f.nextID
	alert.CreatedAt = time.Now()
	f.alerts = append(f.alerts, *alert)
	return nil
}

func (f *fakeAlertStore) List(ctx context.Context, onlyUnseen bool) ([]model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Alert
	for i := len(f.alerts) - 1; i >= 0; i-- {
		if onlyUnseen && f.alerts[i].Seen {
			continue
		}
		out = append(out, f.alerts[i])
	}
	return out, nil
}

func (f *fakeAlertStore) MarkSeen(ctx context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Seen = true
			return true, nil
		}
	}
	return false, nil
}

type fakeImportBatchStore struct {
	mu      sync.Mutex
	batches []model.ImportBatch
}

func (f *fakeImportBatchStore) HasFileHash(ctx context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.batches {
		if b.FileHash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeImportBatchStore) Create(ctx context.Context, batch *model.ImportBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch.ID = uint(len(f.batches) + 1)
	f.batches = append(f.batches, *batch)
	return nil
}
