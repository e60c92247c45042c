package reports

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

// Repository est commun aux signalements et aux signalements de sécurité,
// qui partagent les colonnes status, admin_note et resolved_at.
type Repository[T any] interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResponse[T], error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, adminNote *string, resolvedAt *time.Time) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, statuses ...models.ReportStatus) (int64, error)
}

type repository[T any] struct {
	db       *gorm.DB
	resource string
	rules    models.ListRules
}

func NewReportRepository(db *gorm.DB) Repository[models.Report] {
	return &repository[models.Report]{db: db, resource: "report", rules: models.ReportListRules}
}

func NewSafetyReportRepository(db *gorm.DB) Repository[models.SafetyReport] {
	return &repository[models.SafetyReport]{db: db, resource: "safety report", rules: models.SafetyReportListRules}
}

func (r *repository[T]) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[T], error) {
	var filters []database.Scope
	if query.Status != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", query.Status)
		})
	}
	return database.ListPage[T](ctx, r.db, query, r.rules, filters...)
}

func (r *repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound(r.resource, id.String())
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository[T]) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, adminNote *string, resolvedAt *time.Time) (*T, error) {
	updates := map[string]interface{}{
		"status":      status,
		"resolved_at": resolvedAt,
		"updated_at":  time.Now(),
	}
	if adminNote != nil {
		updates["admin_note"] = *adminNote
	}

	var model T
	result := r.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.NotFound(r.resource, id.String())
	}
	return r.GetByID(ctx, id)
}

func (r *repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(r.resource, id.String())
	}
	return nil
}

func (r *repository[T]) CountByStatus(ctx context.Context, statuses ...models.ReportStatus) (int64, error) {
	var model T
	var count int64
	query := r.db.WithContext(ctx).Model(&model)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&count).Error
	return count, err
}
