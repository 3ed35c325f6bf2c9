package inspect

import (
	"context"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockMediaProber is a mock implementation of MediaProber
type MockMediaProber struct {
	mock.Mock
}

// NewMockMediaProber creates a new MockMediaProber
func NewMockMediaProber() *MockMediaProber {
	return &MockMediaProber{}
}

func (m *MockMediaProber) DurationSeconds(ctx context.Context, blob port.Blob) (float64, error) {
	args := m.Called(ctx, blob)
	return args.Get(0).(float64), args.Error(1)
}

// MockInspector is a mock implementation of Inspector
type MockInspector struct {
	mock.Mock
}

// NewMockInspector creates a new MockInspector
func NewMockInspector() *MockInspector {
	return &MockInspector{}
}

func (m *MockInspector) Validate(blob port.Blob) domain.ValidationVerdict {
	args := m.Called(blob)
	return args.Get(0).(domain.ValidationVerdict)
}

func (m *MockInspector) ExtractDurationMinutes(ctx context.Context, blob port.Blob) domain.DurationEstimate {
	args := m.Called(ctx, blob)
	return args.Get(0).(domain.DurationEstimate)
}

func (m *MockInspector) CheckDuration(estimate domain.DurationEstimate) domain.DurationVerdict {
	args := m.Called(estimate)
	return args.Get(0).(domain.DurationVerdict)
}
