package repository

import (
	"context"
	"therassist/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadAttemptRepository is a mock implementation of UploadAttemptRepository
type MockUploadAttemptRepository struct {
	mock.Mock
}

// NewMockUploadAttemptRepository creates a new MockUploadAttemptRepository
func NewMockUploadAttemptRepository() *MockUploadAttemptRepository {
	return &MockUploadAttemptRepository{}
}

func (m *MockUploadAttemptRepository) Create(ctx context.Context, attempt domain.UploadAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockUploadAttemptRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.UploadState, errorMessage string) error {
	args := m.Called(ctx, id, state, errorMessage)
	return args.Error(0)
}

func (m *MockUploadAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadAttempt), args.Error(1)
}

func (m *MockUploadAttemptRepository) FindByRecordingID(ctx context.Context, recordingID uuid.UUID) ([]domain.UploadAttempt, error) {
	args := m.Called(ctx, recordingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadAttempt), args.Error(1)
}
