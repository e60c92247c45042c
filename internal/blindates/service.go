package blindates

import (
	"context"
	"fmt"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type BlindateService interface {
	ListBlindates(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Blindate], error)
	GetBlindate(ctx context.Context, id uuid.UUID) (*models.Blindate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateBlindateStatusRequest) (*models.Blindate, error)
	DeleteBlindate(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
}

// transitions autorisées; un état final n'a pas de successeur
var transitions = map[models.BlindateStatus][]models.BlindateStatus{
	models.BlindatePending:   {models.BlindateConfirmed, models.BlindateCancelled},
	models.BlindateConfirmed: {models.BlindateCompleted, models.BlindateCancelled},
}

// CanTransition indique si un rendez-vous peut passer de from à to
func CanTransition(from, to models.BlindateStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type blindateService struct {
	repo   BlindateRepository
	tracer trace.Tracer
	now    func() time.Time
}

func NewBlindateService(repo BlindateRepository) BlindateService {
	return &blindateService{
		repo:   repo,
		tracer: otel.Tracer("dating-admin/blindates"),
		now:    time.Now,
	}
}

func (s *blindateService) ListBlindates(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Blindate], error) {
	ctx, span := s.tracer.Start(ctx, "BlindateService.ListBlindates")
	defer span.End()

	page, err := s.repo.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("BlindateService.ListBlindates: Failed to list blind dates")
		return nil, fmt.Errorf("failed to list blind dates: %w", err)
	}

	logutils.Log.Debugf("BlindateService.ListBlindates: Retrieved %d of %d blind dates", len(page.Items), page.Pagination.Total)
	return page, nil
}

func (s *blindateService) GetBlindate(ctx context.Context, id uuid.UUID) (*models.Blindate, error) {
	ctx, span := s.tracer.Start(ctx, "BlindateService.GetBlindate")
	defer span.End()

	blindate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get blind date %s: %w", id, err)
	}
	return blindate, nil
}

func (s *blindateService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateBlindateStatusRequest) (*models.Blindate, error) {
	ctx, span := s.tracer.Start(ctx, "BlindateService.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("blindate.id", id.String()), attribute.String("blindate.status", string(req.Status)))

	if !models.BlindateListRules.AllowsStatus(string(req.Status)) || req.Status == "" {
		err := domain.Invalid(fmt.Sprintf("unknown blind date status %q", req.Status), nil)
		span.RecordError(err)
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get blind date %s: %w", id, err)
	}

	if !CanTransition(current.Status, req.Status) {
		err := domain.Conflict("blind date %s cannot go from %s to %s", id, current.Status, req.Status)
		span.RecordError(err)
		logutils.Log.Warnf("BlindateService.UpdateStatus: %v", err)
		return nil, err
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	logutils.Log.Infof("BlindateService.UpdateStatus: Blind date %s %s -> %s", id, current.Status, req.Status)

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status, notes)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("BlindateService.UpdateStatus: Failed to update blind date %s", id)
		return nil, fmt.Errorf("failed to update blind date %s: %w", id, err)
	}
	return updated, nil
}

func (s *blindateService) DeleteBlindate(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "BlindateService.DeleteBlindate")
	defer span.End()

	logutils.Log.Infof("BlindateService.DeleteBlindate: Deleting blind date %s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete blind date %s: %w", id, err)
	}
	return nil
}

func (s *blindateService) Counts(ctx context.Context) (*Counts, error) {
	ctx, span := s.tracer.Start(ctx, "BlindateService.Counts")
	defer span.End()

	counts, err := s.repo.Counts(ctx, s.now())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count blind dates: %w", err)
	}
	return counts, nil
}
