package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexbrief/internal/domain"
	"lexbrief/internal/service"
)

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Submit(ctx context.Context, input service.SubmitInput) (*service.SubmitResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockUploadService) Reset(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockUploadService) Status(ctx context.Context, sessionID string) (service.UploadStatus, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(service.UploadStatus), args.Error(1)
}

func (m *MockUploadService) Profiles() []domain.UploadProfile {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.UploadProfile)
}
