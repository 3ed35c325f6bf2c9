package blob

import (
	"context"
	"therassist/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockStagingStore is a mock implementation of StagingStore
type MockStagingStore struct {
	mock.Mock
}

// NewMockStagingStore creates a new MockStagingStore
func NewMockStagingStore() *MockStagingStore {
	return &MockStagingStore{}
}

func (m *MockStagingStore) Open(ctx context.Context, key, name, contentType string) (port.Blob, error) {
	args := m.Called(ctx, key, name, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.Blob), args.Error(1)
}

func (m *MockStagingStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
