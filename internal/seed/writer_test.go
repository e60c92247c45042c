package seed

import (
	"context"
	"errors"
	"testing"

	"dating-admin/internal/database/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetKeepsAdmins(t *testing.T) {
	db, mock := dbtest.NewMock(t)

	mock.ExpectBegin()
	for _, table := range []string{"notifications", "safety_reports", "reports", "blindates", "matches", "users"} {
		mock.ExpectExec(`DELETE FROM "` + table + `"`).WillReturnResult(sqlmock.NewResult(0, 2))
	}
	mock.ExpectCommit()

	require.NoError(t, Reset(context.Background(), db))
}

func TestResetRollsBackOnError(t *testing.T) {
	db, mock := dbtest.NewMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notifications"`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := Reset(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reset *models.Notification")
}

func TestWriteEmptyDataset(t *testing.T) {
	db, mock := dbtest.NewMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, Write(context.Background(), db, &Dataset{}))
}
