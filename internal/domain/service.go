package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Service is one entry of the read-only services catalogue.
type Service struct {
	ID          int64                       `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description" gorm:"not null"`
	Icon        string                      `json:"icon"`
	Color       string                      `json:"color"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	ImageURL    string                      `json:"image_url"`
	CreatedAt   time.Time                   `json:"created_at"`
}

func (Service) TableName() string { return "services" }
