package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// MockRecorder is a mock implementation of the generation journal
type MockRecorder struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockRecorder) Record(ctx context.Context, g *models.Generation) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

// Recent mocks the Recent method
func (m *MockRecorder) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Generation), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockRecorder) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MockRecorder) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Driver returns "mock"
func (m *MockRecorder) Driver() string {
	return "mock"
}
