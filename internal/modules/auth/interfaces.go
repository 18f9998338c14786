package auth

import (
	"context"
	"time"

	"teecole/internal/domain"
)

// AdminRepository is the subset of admin storage the login flow needs.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, username, role string) (string, error)
	TTL() time.Duration
}
