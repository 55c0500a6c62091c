package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexbrief/internal/domain"
	"lexbrief/internal/port"
)

// MockSummarizer is a mock implementation of port.Summarizer.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, profile domain.UploadProfile, file port.FileInput) (map[string]interface{}, error) {
	args := m.Called(ctx, profile, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockSummarizer) SummarizeDocx(ctx context.Context, file port.FileInput) (*port.DocxStream, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DocxStream), args.Error(1)
}

func (m *MockSummarizer) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
