package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexbrief/internal/domain"
	"lexbrief/internal/port"
	"lexbrief/internal/service"
)

// MockResultsService is a mock implementation of service.ResultsService.
type MockResultsService struct {
	mock.Mock
}

func (m *MockResultsService) Current(ctx context.Context, sessionID string) (*service.ResultView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResultView), args.Error(1)
}

func (m *MockResultsService) Copy(ctx context.Context, sessionID string, section domain.Section) (string, error) {
	args := m.Called(ctx, sessionID, section)
	return args.String(0), args.Error(1)
}

func (m *MockResultsService) ExportText(ctx context.Context, sessionID string) (*service.Export, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

func (m *MockResultsService) ExportCSV(ctx context.Context, sessionID string) (*service.Export, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

func (m *MockResultsService) ExportWorkbook(ctx context.Context, sessionID string) (*service.Export, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

func (m *MockResultsService) ExportDocx(ctx context.Context, sessionID string) (*port.DocxStream, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DocxStream), args.Error(1)
}

func (m *MockResultsService) AnalyzeAnother(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
