package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"inventorypulse/internal/model"
)

// InventoryService is the single entry point for mutating a product's stock.
// Every accepted adjustment writes the product row and one ledger entry in the
// same transaction, so the stock field and the ledger never drift apart.
type InventoryService struct {
	products  ProductStore
	inventory InventoryStore
	alerts    AlertStore
	log       *zap.Logger
}

func NewInventoryService(products ProductStore, inventory InventoryStore, alerts AlertStore, log *zap.Logger) *InventoryService {
	return &InventoryService{
		products:  products,
		inventory: inventory,
		alerts:    alerts,
		log:       log,
	}
}

// RecentForProduct returns up to limit ledger entries for the product, newest
// first. A non-positive limit yields an empty list rather than an error.
func (s *InventoryService) RecentForProduct(ctx context.Context, productID uint, limit int) ([]model.InventoryTransaction, error) {
	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	if limit <= 0 {
		return []model.InventoryTransaction{}, nil
	}

	return s.inventory.RecentForProduct(ctx, productID, limit)
}

// AdjustStock applies delta to the product's stock and appends a ledger entry.
// externalReference, when non-blank, acts as an idempotency key: a second call
// with the same reference fails with ErrDuplicateReference instead of applying
// the adjustment twice.
func (s *InventoryService) AdjustStock(ctx context.Context, productID uint, delta int, reason, externalReference, actor string) (*model.InventoryTransaction, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}

	ref := strings.TrimSpace(externalReference)
	if ref != "" {
		taken, err := s.inventory.HasExternalReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateReference
		}
	}

	var refPtr *string
	if ref != "" {
		refPtr = &ref
	}

	var previousStock int
	var adjusted model.Product

	entry, err := s.inventory.AdjustStock(ctx, productID, func(product *model.Product) (*model.InventoryTransaction, error) {
		previousStock = product.Stock
		newStock := product.Stock + delta
		if newStock < 0 {
			return nil, &NegativeStockError{CurrentStock: product.Stock, Delta: delta}
		}

		product.Stock = newStock
		adjusted = *product

		return &model.InventoryTransaction{
			Delta:             delta,
			Reason:            reason,
			ExternalReference: refPtr,
			Actor:             actor,
			ResultingStock:    newStock,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	entry.Product = adjusted

	s.log.Info("Stock adjusted",
		zap.Uint("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("resulting_stock", entry.ResultingStock),
		zap.String("actor", actor))

	s.maybeRaiseLowStockAlert(ctx, &adjusted, previousStock)

	return entry, nil
}

// maybeRaiseLowStockAlert creates a LOW_STOCK alert when the adjustment moved
// the product from above its reorder threshold to at-or-below it. Alerts are
// advisory: a failed insert is logged, never surfaced to the caller.
func (s *InventoryService) maybeRaiseLowStockAlert(ctx context.Context, product *model.Product, previousStock int) {
	if previousStock <= product.ReorderThreshold || product.Stock > product.ReorderThreshold {
		return
	}

	alert := &model.Alert{
		ProductID: product.ID,
		Type:      model.AlertTypeLowStock,
		Message: fmt.Sprintf("Product %s is low on stock (%d remaining, reorder at %d)",
			product.SKU, product.Stock, product.ReorderThreshold),
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		s.log.Warn("Failed to create low-stock alert",
			zap.Uint("product_id", product.ID),
			zap.Error(err))
	}
}
