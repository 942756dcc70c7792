package model

import "time"

// User roles
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleViewer  = "VIEWER"
)

// User represents an authenticated account
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Email        string    `json:"email" gorm:"type:varchar(255);unique;not null"`
	Username     string    `json:"username" gorm:"type:varchar(50);unique;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string    `json:"role" gorm:"type:varchar(20);not null;default:'VIEWER'"`
	CreatedAt    time.Time `json:"createdAt"`
}
