package service

import (
	"context"

	"inventorypulse/internal/model"
)

// ProductStore is the persistence surface the catalog service needs.
type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	// FindByID returns (nil, nil) when no product has the id.
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// ExistsBySKU reports whether a product other than excludeID owns the SKU.
	// Pass excludeID 0 to check against all products.
	ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Save(ctx context.Context, product *model.Product) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id uint) (bool, error)
}

// AdjustFunc mutates the locked product and builds the ledger entry to append.
// Any error returned aborts the surrounding transaction with nothing written.
type AdjustFunc func(product *model.Product) (*model.InventoryTransaction, error)

// InventoryStore is the persistence surface the adjustment workflow needs.
type InventoryStore interface {
	HasExternalReference(ctx context.Context, ref string) (bool, error)
	RecentForProduct(ctx context.Context, productID uint, limit int) ([]model.InventoryTransaction, error)
	// AdjustStock loads the product under a write lock, applies fn, then
	// persists the mutated product and the returned ledger entry atomically.
	// Returns ErrProductNotFound when the product does not exist and
	// ErrDuplicateReference when the entry's external reference is taken.
	AdjustStock(ctx context.Context, productID uint, fn AdjustFunc) (*model.InventoryTransaction, error)
}

// AlertStore is the persistence surface for advisory alerts.
type AlertStore interface {
	Create(ctx context.Context, alert *model.Alert) error
	List(ctx context.Context, onlyUnseen bool) ([]model.Alert, error)
	// MarkSeen reports whether the alert existed.
	MarkSeen(ctx context.Context, id uint) (bool, error)
}

// ImportBatchStore records CSV uploads for duplicate-file detection.
type ImportBatchStore interface {
	HasFileHash(ctx context.Context, hash string) (bool, error)
	Create(ctx context.Context, batch *model.ImportBatch) error
}
