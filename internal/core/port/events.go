package port

import (
	"context"
	"therassist/internal/core/domain"
)

// EventPublisher is an interface to define a lifecycle event publisher (nats, kafka, ...)
type EventPublisher interface {
	PublishUploadEvent(ctx context.Context, event domain.UploadEvent) error
	Close() error
}
