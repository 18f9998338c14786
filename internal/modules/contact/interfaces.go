package contact

import (
	"context"

	"teecole/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s *domain.ContactSubmission) error
	List(ctx context.Context) ([]domain.ContactSubmission, error)
}
