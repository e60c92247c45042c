package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRunOnce(t *testing.T) {
	repo := &fakeRepo{purged: 5}
	svc := newTestService(repo, &fakeRecipients{})
	cleanup := NewCleanupService(svc, "@daily", 7*24*time.Hour)

	assert.Equal(t, int64(5), cleanup.RunOnce(context.Background()))
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), repo.purgedBefore)
}

func TestCleanupRejectsInvalidSchedule(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeRecipients{})
	cleanup := NewCleanupService(svc, "every tuesday", time.Hour)

	err := cleanup.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cleanup schedule")
}

func TestCleanupStopsWithContext(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeRecipients{})
	cleanup := NewCleanupService(svc, "@hourly", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, cleanup.Start(ctx))
	assert.Len(t, cleanup.cron.Entries(), 1)
	cancel()

	done := make(chan struct{})
	go func() {
		cleanup.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup service did not stop")
	}
}
