package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexbrief/internal/domain"
	"lexbrief/internal/port"
)

// MockSubmissionTracker is a mock implementation of port.SubmissionTracker.
type MockSubmissionTracker struct {
	mock.Mock
}

func (m *MockSubmissionTracker) Begin(ctx context.Context, sessionID string, sub port.Submission) error {
	args := m.Called(ctx, sessionID, sub)
	return args.Error(0)
}

func (m *MockSubmissionTracker) Current(ctx context.Context, sessionID string) (*port.Submission, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Submission), args.Error(1)
}

func (m *MockSubmissionTracker) Finish(ctx context.Context, sessionID, submissionID string) error {
	args := m.Called(ctx, sessionID, submissionID)
	return args.Error(0)
}

func (m *MockSubmissionTracker) Abandon(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSubmissionTracker) Commit(ctx context.Context, sessionID, submissionID string, rec domain.AnalysisRecord) (domain.AnalysisRecord, error) {
	args := m.Called(ctx, sessionID, submissionID, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AnalysisRecord), args.Error(1)
}
