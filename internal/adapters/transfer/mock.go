package transfer

import (
	"context"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockTransfer is a mock implementation of Transfer
type MockTransfer struct {
	mock.Mock
}

// NewMockTransfer creates a new MockTransfer
func NewMockTransfer() *MockTransfer {
	return &MockTransfer{}
}

func (m *MockTransfer) Send(ctx context.Context, blob port.Blob, target domain.TransferTarget, progress port.ProgressFunc) error {
	args := m.Called(ctx, blob, target, progress)
	return args.Error(0)
}
