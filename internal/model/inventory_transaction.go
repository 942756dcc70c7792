package model

import "time"

// InventoryTransaction is one immutable ledger entry recording a stock change.
// ResultingStock is the product's stock immediately after the entry was applied,
// stored redundantly so history reads don't have to replay deltas.
type InventoryTransaction struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	ProductID uint    `json:"productId" gorm:"column:product_id;not null;index"`
	Product   Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Delta     int     `json:"delta" gorm:"not null"`
	Reason    string  `json:"reason" gorm:"type:text"`
	// Caller-supplied idempotency key. NULL when the caller sent none; the
	// unique index only guards real values.
	ExternalReference *string   `json:"externalReference" gorm:"column:external_reference;type:varchar(255);uniqueIndex"`
	Actor             string    `json:"actor" gorm:"type:varchar(255)"`
	CreatedAt         time.Time `json:"createdAt"`
	ResultingStock    int       `json:"resultingStock" gorm:"column:resulting_stock;not null"`
}
