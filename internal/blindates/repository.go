package blindates

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

type BlindateRepository interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Blindate], error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blindate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BlindateStatus, notes *string) (*models.Blindate, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context, now time.Time) (*Counts, error)
}

// Counts regroupe les compteurs de rendez-vous
type Counts struct {
	Total    int64
	Upcoming int64
}

type blindateRepository struct {
	db *gorm.DB
}

func NewBlindateRepository(db *gorm.DB) BlindateRepository {
	return &blindateRepository{db: db}
}

func (r *blindateRepository) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Blindate], error) {
	var filters []database.Scope
	if query.Status != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", query.Status)
		})
	}
	return database.ListPage[models.Blindate](ctx, r.db, query, models.BlindateListRules, filters...)
}

func (r *blindateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Blindate, error) {
	var blindate models.Blindate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&blindate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("blindate", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &blindate, nil
}

func (r *blindateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BlindateStatus, notes *string) (*models.Blindate, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.WithContext(ctx).Model(&models.Blindate{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.NotFound("blindate", id.String())
	}

	return r.GetByID(ctx, id)
}

func (r *blindateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blindate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("blindate", id.String())
	}
	return nil
}

func (r *blindateRepository) Counts(ctx context.Context, now time.Time) (*Counts, error) {
	var counts Counts
	err := r.db.WithContext(ctx).Model(&models.Blindate{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE scheduled_at > ? AND status IN ?) AS upcoming",
			now, []models.BlindateStatus{models.BlindatePending, models.BlindateConfirmed}).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
