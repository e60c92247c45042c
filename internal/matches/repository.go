package matches

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

type MatchRepository interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Match], error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
}

// Counts regroupe les compteurs de matchs
type Counts struct {
	Total  int64
	Active int64
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Match], error) {
	var filters []database.Scope
	if query.Status != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", query.Status)
		})
	}
	return database.ListPage[models.Match](ctx, r.db, query, models.MatchListRules, filters...)
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("match", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	result := r.db.WithContext(ctx).Model(&models.Match{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.NotFound("match", id.String())
	}
	return r.GetByID(ctx, id)
}

func (r *matchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Match{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("match", id.String())
	}
	return nil
}

func (r *matchRepository) Counts(ctx context.Context) (*Counts, error) {
	var counts Counts
	err := r.db.WithContext(ctx).Model(&models.Match{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS active", models.MatchActive).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
