package notifications

import (
	"context"
	"fmt"
	"time"

	"dating-admin/internal/logutils"

	"github.com/robfig/cron/v3"
)

// CleanupService purge périodiquement les notifications lues trop anciennes
type CleanupService struct {
	service  NotificationService
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
}

func NewCleanupService(service NotificationService, schedule string, maxAge time.Duration) *CleanupService {
	return &CleanupService{
		service:  service,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(),
	}
}

// Start enregistre la purge sur le planning cron; elle s'arrête avec ctx
func (c *CleanupService) Start(ctx context.Context) error {
	if _, err := c.cron.AddFunc(c.schedule, func() { c.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", c.schedule, err)
	}

	c.cron.Start()
	logutils.Log.Infof("Cleanup service started (schedule: %s, max age: %v)", c.schedule, c.maxAge)

	go func() {
		<-ctx.Done()
		c.Stop()
		logutils.Log.Info("Cleanup service stopped due to context cancellation")
	}()

	return nil
}

// RunOnce exécute une purge immédiatement
func (c *CleanupService) RunOnce(ctx context.Context) int64 {
	deleted, err := c.service.PurgeRead(ctx, c.maxAge)
	if err != nil {
		logutils.Log.WithError(err).Error("Cleanup error")
		return 0
	}
	if deleted > 0 {
		logutils.Log.Infof("Cleanup completed: %d read notifications removed", deleted)
	}
	return deleted
}

// Stop attend la fin d'une purge en cours
func (c *CleanupService) Stop() {
	<-c.cron.Stop().Done()
}
