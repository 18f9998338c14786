package repository

import (
	"context"

	"gorm.io/gorm"

	"teecole/internal/domain"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, s *domain.ContactSubmission) error {
	if s.Status == "" {
		s.Status = domain.ContactStatusNew
	}
	return r.db.WithContext(ctx).Create(s).Error
}

// List returns every submission, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	var rows []domain.ContactSubmission
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}
