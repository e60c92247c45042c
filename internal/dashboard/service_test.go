package dashboard

import (
	"context"
	"errors"
	"testing"

	"dating-admin/internal/blindates"
	"dating-admin/internal/matches"
	"dating-admin/internal/reports"
	"dating-admin/internal/users"
	"dating-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userCounts struct {
	counts *users.Counts
	err    error
}

func (u userCounts) Counts(context.Context) (*users.Counts, error) { return u.counts, u.err }

type matchCounts struct{ counts *matches.Counts }

func (m matchCounts) Counts(context.Context) (*matches.Counts, error) { return m.counts, nil }

type blindateCounts struct{ counts *blindates.Counts }

func (b blindateCounts) Counts(context.Context) (*blindates.Counts, error) { return b.counts, nil }

type reportCounts struct{ counts *reports.Counts }

func (r reportCounts) Counts(context.Context) (*reports.Counts, error) { return r.counts, nil }

type unreadCount int64

func (u unreadCount) CountUnread(context.Context) (int64, error) { return int64(u), nil }

func TestStatsAggregatesEveryResource(t *testing.T) {
	svc := NewDashboardService(
		userCounts{counts: &users.Counts{Total: 120, Verified: 80, Banned: 4, Premium: 15}},
		matchCounts{counts: &matches.Counts{Total: 60, Active: 52}},
		blindateCounts{counts: &blindates.Counts{Total: 30, Upcoming: 9}},
		reportCounts{counts: &reports.Counts{PendingReports: 5, OpenSafetyReports: 2}},
		unreadCount(41),
	)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{
		Users:               120,
		VerifiedUsers:       80,
		BannedUsers:         4,
		PremiumUsers:        15,
		Matches:             60,
		ActiveMatches:       52,
		Blindates:           30,
		UpcomingBlindates:   9,
		PendingReports:      5,
		OpenSafetyReports:   2,
		UnreadNotifications: 41,
	}, stats)
}

func TestStatsStopsOnFirstError(t *testing.T) {
	svc := NewDashboardService(
		userCounts{err: errors.New("database is down")},
		matchCounts{}, blindateCounts{}, reportCounts{}, unreadCount(0),
	)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count users")
}
