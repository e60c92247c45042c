package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created      []*models.Notification
	createErr    error
	purgedBefore time.Time
	purged       int64
	unread       int64
}

func (f *fakeRepo) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Notification], error) {
	return &models.ListResponse[models.Notification]{Pagination: models.NewPagination(0, query.Page, query.Limit)}, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return nil, domain.NotFound("notification", id.String())
}

func (f *fakeRepo) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, notifications...)
	return nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (*models.Notification, error) {
	return &models.Notification{ID: id, IsRead: true, ReadAt: &at}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return domain.NotFound("notification", id.String())
}

func (f *fakeRepo) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	f.purgedBefore = before
	return f.purged, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context) (int64, error) {
	return f.unread, nil
}

type fakeRecipients struct {
	users map[uuid.UUID]bool
	ids   []uuid.UUID
}

func (f *fakeRecipients) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if !f.users[id] {
		return nil, domain.NotFound("user", id.String())
	}
	return &models.User{ID: id}, nil
}

func (f *fakeRecipients) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.ids, nil
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, recipients *fakeRecipients) *notificationServiceImpl {
	svc := NewNotificationServiceImpl(repo, recipients).(*notificationServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestSendToSingleUser(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeRecipients{users: map[uuid.UUID]bool{userID: true}})

	sent, err := svc.Send(context.Background(), &models.SendNotificationRequest{
		UserID:  &userID,
		Title:   "  Bienvenue ",
		Content: "Votre profil est vérifié",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, repo.created[0].UserID)
	assert.Equal(t, models.NotificationSystem, repo.created[0].Type)
	assert.Equal(t, "Bienvenue", repo.created[0].Title)
}

func TestSendToUnknownUser(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeRecipients{})

	_, err := svc.Send(context.Background(), &models.SendNotificationRequest{UserID: &userID, Title: "t", Content: "c"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, repo.created)
}

func TestBroadcastDeduplicatesRecipients(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeRecipients{ids: []uuid.UUID{a, b, a}})

	sent, err := svc.Send(context.Background(), &models.SendNotificationRequest{
		Broadcast: true,
		Type:      models.NotificationBlindate,
		Title:     "Nouveaux blind dates",
		Content:   "Inscrivez-vous",
		Data:      map[string]interface{}{"city": "Lyon"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	for _, n := range repo.created {
		assert.Equal(t, models.NotificationBlindate, n.Type)
		assert.Equal(t, "Lyon", n.Data["city"])
	}
}

func TestSendRejectsInvalidTargets(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name string
		req  models.SendNotificationRequest
	}{
		{"no target", models.SendNotificationRequest{Title: "t", Content: "c"}},
		{"both targets", models.SendNotificationRequest{UserID: &userID, Broadcast: true, Title: "t", Content: "c"}},
		{"blank title", models.SendNotificationRequest{Broadcast: true, Title: "  ", Content: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeRepo{}, &fakeRecipients{})
			_, err := svc.Send(context.Background(), &tt.req)
			assert.True(t, domain.IsInvalid(err))
		})
	}
}

func TestSendStorageFailure(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("connection reset")}
	svc := newTestService(repo, &fakeRecipients{ids: []uuid.UUID{uuid.New()}})

	sent, err := svc.Send(context.Background(), &models.SendNotificationRequest{Broadcast: true, Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Zero(t, sent)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPurgeReadUsesCutoff(t *testing.T) {
	repo := &fakeRepo{purged: 4}
	svc := newTestService(repo, &fakeRecipients{})

	deleted, err := svc.PurgeRead(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, fixedNow.Add(-30*24*time.Hour), repo.purgedBefore)
}

func TestMarkReadStampsNow(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeRecipients{})

	n, err := svc.MarkRead(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.Equal(t, fixedNow, *n.ReadAt)
}

func TestDeleteMissingNotification(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeRecipients{})

	err := svc.DeleteNotification(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}
