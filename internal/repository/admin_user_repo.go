package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teecole/internal/domain"
)

type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByUsername matches the username exactly.
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Recreate removes every admin and inserts u in one transaction.
func (r *AdminUserRepository) Recreate(ctx context.Context, u *domain.AdminUser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.AdminUser{}).Error; err != nil {
			return err
		}
		return tx.Create(u).Error
	})
}

// Upsert inserts u or refreshes the password, email and role of the
// admin with the same username.
func (r *AdminUserRepository) Upsert(ctx context.Context, u *domain.AdminUser) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "email", "role"}),
	}).Create(u).Error
}

func (r *AdminUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.AdminUser{}).Count(&n).Error
	return n, err
}
