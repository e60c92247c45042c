package dashboard

import (
	"context"
	"fmt"

	"dating-admin/internal/blindates"
	"dating-admin/internal/matches"
	"dating-admin/internal/reports"
	"dating-admin/internal/users"
	"dating-admin/pkg/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type (
	UserCounter     interface{ Counts(context.Context) (*users.Counts, error) }
	MatchCounter    interface{ Counts(context.Context) (*matches.Counts, error) }
	BlindateCounter interface{ Counts(context.Context) (*blindates.Counts, error) }
	ReportCounter   interface{ Counts(context.Context) (*reports.Counts, error) }
	UnreadCounter   interface{ CountUnread(context.Context) (int64, error) }
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	users         UserCounter
	matches       MatchCounter
	blindates     BlindateCounter
	reports       ReportCounter
	notifications UnreadCounter
	tracer        trace.Tracer
}

func NewDashboardService(u UserCounter, m MatchCounter, b BlindateCounter, r ReportCounter, n UnreadCounter) DashboardService {
	return &dashboardService{
		users:         u,
		matches:       m,
		blindates:     b,
		reports:       r,
		notifications: n,
		tracer:        otel.Tracer("dating-admin/dashboard"),
	}
}

// Stats interroge chaque ressource; la première erreur interrompt l'agrégation
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Stats")
	defer span.End()

	var stats models.DashboardStats

	userCounts, err := s.users.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	stats.Users = userCounts.Total
	stats.VerifiedUsers = userCounts.Verified
	stats.BannedUsers = userCounts.Banned
	stats.PremiumUsers = userCounts.Premium

	matchCounts, err := s.matches.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	stats.Matches = matchCounts.Total
	stats.ActiveMatches = matchCounts.Active

	blindateCounts, err := s.blindates.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count blind dates: %w", err)
	}
	stats.Blindates = blindateCounts.Total
	stats.UpcomingBlindates = blindateCounts.Upcoming

	reportCounts, err := s.reports.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	stats.PendingReports = reportCounts.PendingReports
	stats.OpenSafetyReports = reportCounts.OpenSafetyReports

	unread, err := s.notifications.CountUnread(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}
	stats.UnreadNotifications = unread

	return &stats, nil
}
