package matches

import (
	"context"
	"fmt"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type MatchService interface {
	ListMatches(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Match], error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	Unmatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
}

type matchService struct {
	repo   MatchRepository
	tracer trace.Tracer
}

func NewMatchService(repo MatchRepository) MatchService {
	return &matchService{
		repo:   repo,
		tracer: otel.Tracer("dating-admin/matches"),
	}
}

func (s *matchService) ListMatches(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Match], error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.ListMatches")
	defer span.End()

	page, err := s.repo.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("MatchService.ListMatches: Failed to list matches")
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return page, nil
}

func (s *matchService) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.GetMatch")
	defer span.End()

	match, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Unmatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.Unmatch")
	defer span.End()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	if current.Status == models.MatchUnmatched {
		err := domain.Conflict("match %s is already unmatched", id)
		span.RecordError(err)
		return nil, err
	}

	logutils.Log.Infof("MatchService.Unmatch: Unmatching %s (%s / %s)", id, current.UserAName, current.UserBName)

	match, err := s.repo.SetStatus(ctx, id, models.MatchUnmatched)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("MatchService.Unmatch: Failed to update match %s", id)
		return nil, fmt.Errorf("failed to unmatch %s: %w", id, err)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "MatchService.DeleteMatch")
	defer span.End()

	logutils.Log.Infof("MatchService.DeleteMatch: Deleting match %s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return nil
}

func (s *matchService) Counts(ctx context.Context) (*Counts, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.Counts")
	defer span.End()

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	return counts, nil
}
