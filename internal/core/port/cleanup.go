package port

import (
	"context"
	"time"
)

// CleanupService is service that handles cleanup of abandoned upload sessions
type CleanupService interface {
	CleanupIdleSessions(ctx context.Context, now time.Time) error
}
