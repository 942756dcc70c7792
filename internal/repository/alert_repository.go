package repository

import (
	"context"

	"gorm.io/gorm"

	"inventorypulse/internal/model"
)

// AlertRepository implements service.AlertStore on GORM / Postgres.
type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *AlertRepository) List(ctx context.Context, onlyUnseen bool) ([]model.Alert, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if onlyUnseen {
		query = query.Where("seen = ?", false)
	}

	var alerts []model.Alert
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *AlertRepository) MarkSeen(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ?", id).
		Update("seen", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
