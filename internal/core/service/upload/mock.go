package upload

import (
	"context"
	"therassist/internal/core/domain"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadManager is a mock implementation of UploadManager
type MockUploadManager struct {
	mock.Mock
}

// NewMockUploadManager creates a new MockUploadManager
func NewMockUploadManager() *MockUploadManager {
	return &MockUploadManager{}
}

func (m *MockUploadManager) CreateUpload(ctx context.Context, stagingKey, fileName, contentType string, recordingID uuid.UUID) (uuid.UUID, domain.UploadSnapshot, error) {
	args := m.Called(ctx, stagingKey, fileName, contentType, recordingID)
	return args.Get(0).(uuid.UUID), args.Get(1).(domain.UploadSnapshot), args.Error(2)
}

func (m *MockUploadManager) GetUpload(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	args := m.Called(uploadID)
	return args.Get(0).(domain.UploadSnapshot), args.Error(1)
}

func (m *MockUploadManager) SetConsent(uploadID uuid.UUID, given bool) (domain.UploadSnapshot, error) {
	args := m.Called(uploadID, given)
	return args.Get(0).(domain.UploadSnapshot), args.Error(1)
}

func (m *MockUploadManager) StartTransfer(ctx context.Context, uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	args := m.Called(ctx, uploadID)
	return args.Get(0).(domain.UploadSnapshot), args.Error(1)
}

func (m *MockUploadManager) CancelTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	args := m.Called(uploadID)
	return args.Get(0).(domain.UploadSnapshot), args.Error(1)
}

func (m *MockUploadManager) RetryTransfer(uploadID uuid.UUID) (domain.UploadSnapshot, error) {
	args := m.Called(uploadID)
	return args.Get(0).(domain.UploadSnapshot), args.Error(1)
}

func (m *MockUploadManager) RemoveUpload(ctx context.Context, uploadID uuid.UUID) error {
	args := m.Called(ctx, uploadID)
	return args.Error(0)
}

func (m *MockUploadManager) ExpireIdleSessions(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}
