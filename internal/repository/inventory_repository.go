package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventorypulse/internal/model"
	"inventorypulse/internal/service"
)

// InventoryRepository implements service.InventoryStore on GORM / Postgres.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) HasExternalReference(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InventoryTransaction{}).
		Where("external_reference = ?", ref).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InventoryRepository) RecentForProduct(ctx context.Context, productID uint, limit int) ([]model.InventoryTransaction, error) {
	var entries []model.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AdjustStock runs the whole adjustment inside one transaction: the product
// row is locked FOR UPDATE so concurrent adjustments on the same product
// serialize, then the mutated product and the new ledger entry commit
// together or not at all.
func (r *InventoryRepository) AdjustStock(ctx context.Context, productID uint, fn service.AdjustFunc) (*model.InventoryTransaction, error) {
	var created *model.InventoryTransaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		entry, err := fn(&product)
		if err != nil {
			return err
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		entry.ProductID = product.ID
		if err := tx.Create(entry).Error; err != nil {
			// Unique index on external_reference backstops the
			// service-level pre-check under concurrent reuse
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.ErrDuplicateReference
			}
			return err
		}

		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
