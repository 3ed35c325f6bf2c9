package port

import (
	"context"
	"therassist/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// UploadManager drives upload sessions by id on behalf of the UI layer. Every
// method returns the session snapshot after the requested transition; methods
// on a state that does not permit the transition are no-ops, not errors.
type UploadManager interface {
	CreateUpload(ctx context.Context, stagingKey, fileName, contentType string, recordingID uuid.UUID) (uuid.UUID, domain.UploadSnapshot, error)
	GetUpload(uploadID uuid.UUID) (domain.UploadSnapshot, error)
	SetConsent(uploadID uuid.UUID, given bool) (domain.UploadSnapshot, error)
	StartTransfer(ctx context.Context, uploadID uuid.UUID) (domain.UploadSnapshot, error)
	CancelTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error)
	RetryTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error)
	RemoveUpload(ctx context.Context, uploadID uuid.UUID) error
	ExpireIdleSessions(ctx context.Context, olderThan time.Time) (int, error)
}

// UploadAttemptRepository is an interface to persist upload attempt history
type UploadAttemptRepository interface {
	Create(ctx context.Context, attempt domain.UploadAttempt) error
	UpdateState(ctx context.Context, id uuid.UUID, state domain.UploadState, errorMessage string) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadAttempt, error)
	FindByRecordingID(ctx context.Context, recordingID uuid.UUID) ([]domain.UploadAttempt, error)
}
