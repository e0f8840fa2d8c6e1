package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
	"billscan/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, text string, existing []service.RawRow) domain.ParsedDocument {
	args := m.Called(ctx, text, existing)
	return args.Get(0).(domain.ParsedDocument)
}

func (m *MockExtractionService) ExtractBatch(ctx context.Context, docs []service.BatchDocument) ([]service.BatchResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.BatchResult), args.Error(1)
}
