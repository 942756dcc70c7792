package model

// Product represents the product master data
type Product struct {
	ID               uint   `json:"id" gorm:"primarykey"`
	SKU              string `json:"sku" gorm:"type:varchar(100);unique;not null"`
	Title            string `json:"title" gorm:"type:varchar(255);not null"`
	Description      string `json:"description" gorm:"type:text"`
	Brand            string `json:"brand" gorm:"type:varchar(255)"`
	Category         string `json:"category" gorm:"type:varchar(255)"`
	ImageURL         string `json:"imageUrl" gorm:"column:image_url;type:text"`
	Stock            int    `json:"stock" gorm:"not null;default:0"`
	ReorderThreshold int    `json:"reorderThreshold" gorm:"not null;default:0"`
}
