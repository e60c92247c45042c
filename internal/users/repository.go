package users

import (
	"context"
	"errors"
	"time"

	"dating-admin/internal/database"
	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Counts regroupe les compteurs d'utilisateurs du tableau de bord
type Counts struct {
	Total    int64
	Verified int64
	Banned   int64
	Premium  int64
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// statusScope traduit un statut de filtre en condition SQL
func statusScope(status string) database.Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case models.UserStatusActive:
			return db.Where("is_banned = ?", false)
		case models.UserStatusBanned:
			return db.Where("is_banned = ?", true)
		case models.UserStatusVerified:
			return db.Where("is_verified = ?", true)
		case models.UserStatusUnverified:
			return db.Where("is_verified = ?", false)
		case models.UserStatusPremium:
			return db.Where("is_premium = ?", true)
		default:
			return db
		}
	}
}

func (r *userRepository) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.User], error) {
	return database.ListPage[models.User](ctx, r.db, query, models.UserListRules, statusScope(query.Status))
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("user", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error) {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.NotFound("user", id.String())
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("user", id.String())
	}
	return nil
}

func (r *userRepository) Counts(ctx context.Context) (*Counts, error) {
	var counts Counts
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE is_verified) AS verified, " +
			"COUNT(*) FILTER (WHERE is_banned) AS banned, " +
			"COUNT(*) FILTER (WHERE is_premium) AS premium").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *userRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_banned = ?", false).
		Order("created_at").
		Pluck("id", &ids).Error
	return ids, err
}
