package domain

import "time"

const RoleAdmin = "admin"

type AdminUser struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Role         string    `json:"role" gorm:"default:admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
