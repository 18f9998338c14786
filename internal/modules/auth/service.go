package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("teecole-dummy-password"), bcrypt.DefaultCost)
	return h
}()

type Service struct {
	admins AdminRepository
	jwt    tokenIssuer
}

func NewService(admins AdminRepository, jwt tokenIssuer) *Service {
	return &Service{admins: admins, jwt: jwt}
}

// Login checks the credentials and issues a signed token. An unknown
// username and a wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.jwt.TTL().Seconds()),
		User: UserPublic{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		},
	}, nil
}
