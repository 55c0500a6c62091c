package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexbrief/internal/domain"
)

// MockMailbox is a mock implementation of port.Mailbox.
type MockMailbox struct {
	mock.Mock
}

func (m *MockMailbox) Put(ctx context.Context, sessionID string, rec domain.AnalysisRecord) error {
	args := m.Called(ctx, sessionID, rec)
	return args.Error(0)
}

func (m *MockMailbox) Peek(ctx context.Context, sessionID string) (domain.AnalysisRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AnalysisRecord), args.Error(1)
}

func (m *MockMailbox) TakeOnce(ctx context.Context, sessionID string) (domain.AnalysisRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AnalysisRecord), args.Error(1)
}

func (m *MockMailbox) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
