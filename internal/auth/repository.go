package auth

import (
	"context"
	"errors"
	"strings"

	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Upsert(ctx context.Context, admin *models.Admin) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("admin", email)
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Upsert crée le compte ou remplace son mot de passe et son rôle
func (r *adminRepository) Upsert(ctx context.Context, admin *models.Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "role", "updated_at"}),
	}).Create(admin).Error
}
