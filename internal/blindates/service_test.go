package blindates

import (
	"context"
	"testing"
	"time"

	"dating-admin/internal/database/dbtest"
	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.BlindateStatus
		allowed  bool
	}{
		{models.BlindatePending, models.BlindateConfirmed, true},
		{models.BlindatePending, models.BlindateCancelled, true},
		{models.BlindatePending, models.BlindateCompleted, false},
		{models.BlindateConfirmed, models.BlindateCompleted, true},
		{models.BlindateCompleted, models.BlindatePending, false},
		{models.BlindateCancelled, models.BlindateConfirmed, false},
		{models.BlindateCancelled, models.BlindateCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func blindateRows(id uuid.UUID, status models.BlindateStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "requester_name", "partner_name", "status"}).
		AddRow(id.String(), "Lea", "Hugo", string(status))
}

func TestUpdateStatusConfirmsPendingDate(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	svc := NewBlindateService(NewBlindateRepository(db))
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "blindates" WHERE id = \$1`).WillReturnRows(blindateRows(id, models.BlindatePending))
	mock.ExpectExec(`UPDATE "blindates" SET "notes"=\$1,"status"=\$2`).
		WithArgs("Cafe moved to 19h", models.BlindateConfirmed, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "blindates" WHERE id = \$1`).WillReturnRows(blindateRows(id, models.BlindateConfirmed))

	updated, err := svc.UpdateStatus(context.Background(), id, &models.UpdateBlindateStatusRequest{
		Status: models.BlindateConfirmed,
		Notes:  "Cafe moved to 19h",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BlindateConfirmed, updated.Status)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	svc := NewBlindateService(NewBlindateRepository(db))
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "blindates" WHERE id = \$1`).WillReturnRows(blindateRows(id, models.BlindateCompleted))

	_, err := svc.UpdateStatus(context.Background(), id, &models.UpdateBlindateStatusRequest{Status: models.BlindatePending})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db, _ := dbtest.NewMock(t)
	svc := NewBlindateService(NewBlindateRepository(db))

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), &models.UpdateBlindateStatusRequest{Status: "postponed"})
	assert.True(t, domain.IsInvalid(err))
}

func TestGetBlindateNotFound(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	svc := NewBlindateService(NewBlindateRepository(db))

	mock.ExpectQuery(`SELECT \* FROM "blindates"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetBlindate(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestCountsUsesCurrentTime(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	svc := NewBlindateService(NewBlindateRepository(db)).(*blindateService)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total, COUNT\(\*\) FILTER \(WHERE scheduled_at > \$1 AND status IN \(\$2,\$3\)\) AS upcoming`).
		WithArgs(now, models.BlindatePending, models.BlindateConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"total", "upcoming"}).AddRow(9, 4))

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), counts.Total)
	assert.Equal(t, int64(4), counts.Upcoming)
}
