package model

import "time"

// ImportBatch records one CSV upload. The file hash is unique so the same
// file cannot be imported twice.
type ImportBatch struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	FileName   string    `json:"fileName" gorm:"column:file_name;type:text"`
	FileHash   string    `json:"fileHash" gorm:"column:file_hash;type:varchar(64);uniqueIndex"`
	UploaderID uint      `json:"uploaderId" gorm:"column:uploader_id"`
	CreatedAt  time.Time `json:"createdAt"`
}
