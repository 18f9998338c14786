package catalog

import (
	"context"

	"teecole/internal/domain"
)

type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
