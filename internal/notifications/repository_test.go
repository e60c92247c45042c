package notifications

import (
	"context"
	"testing"
	"time"

	"dating-admin/internal/database/dbtest"
	"dating-admin/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUnreadNotifications(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE is_read = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE is_read = \$1 ORDER BY "created_at" DESC,"id" LIMIT .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "is_read"}).
			AddRow(uuid.NewString(), "Nouveau match", false).
			AddRow(uuid.NewString(), "Nouveau message", false))

	page, err := repo.List(context.Background(), models.ListQuery{
		Page: 1, Limit: 2, Sort: "createdAt", Order: models.SortDesc, Status: models.NotificationStatusUnread,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)
}

func TestDeleteReadBefore(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	repo := NewNotificationRepository(db)
	cutoff := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "notifications" WHERE is_read = \$1 AND read_at < \$2`).
		WithArgs(true, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteReadBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}

func TestCreateBatchSkipsEmpty(t *testing.T) {
	db, _ := dbtest.NewMock(t)
	repo := NewNotificationRepository(db)

	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
}
