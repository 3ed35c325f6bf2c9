package cleanup

import (
	"context"
	"log/slog"
	"time"

	"therassist/internal/config"
	"therassist/internal/core/port"
)

type cleanupService struct {
	manager port.UploadManager
	cfg     config.UploadConfig
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(manager port.UploadManager, cfg config.UploadConfig, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		manager: manager,
		cfg:     cfg,
		logger:  logger,
	}
}

// CleanupIdleSessions expires sessions that saw no activity for the
// configured TTL, freeing their staged objects.
func (c *cleanupService) CleanupIdleSessions(ctx context.Context, now time.Time) error {
	olderThan := now.Add(-c.cfg.SessionTTL)

	expired, err := c.manager.ExpireIdleSessions(ctx, olderThan)
	if err != nil {
		c.logger.Error("failed to expire idle sessions", "err", err)
		return err
	}

	if expired > 0 {
		c.logger.Info("idle session cleanup completed", "expired", expired)
	}
	return nil
}
