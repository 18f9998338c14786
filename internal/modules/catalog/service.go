package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"teecole/internal/domain"
)

type Service struct {
	repo ServiceRepository
}

func NewService(repo ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if services == nil {
		services = []domain.Service{}
	}
	return services, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return svc, nil
}
