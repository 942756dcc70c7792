package model

import "time"

// Alert types
const (
	AlertTypeLowStock = "LOW_STOCK"
)

// Alert is an advisory notification about a product, currently only low-stock.
type Alert struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"productId" gorm:"column:product_id;not null;index"`
	Product   Product   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Seen      bool      `json:"seen" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}
