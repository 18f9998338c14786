package domain

import "time"

const ContactStatusNew = "new"

type ContactSubmission struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:new"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
