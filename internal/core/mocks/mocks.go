package mocks

import (
	"context"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockFairRepository is a mock implementation of ports.FairRepository
type MockFairRepository struct {
	mock.Mock
}

func NewMockFairRepository() *MockFairRepository {
	return &MockFairRepository{}
}

func (m *MockFairRepository) Fetch(ctx context.Context, query string) (*domain.Table, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *MockFairRepository) LatestSummary(ctx context.Context) (domain.SummaryRow, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SummaryRow), args.Error(1)
}

func (m *MockFairRepository) IntervalCounts(ctx context.Context) ([]domain.IntervalCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntervalCount), args.Error(1)
}

func (m *MockFairRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockDashboardService) TimeSeries(ctx context.Context, mode domain.Mode) (*domain.ChartSpec, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartSpec), args.Error(1)
}

func (m *MockDashboardService) Intervals(ctx context.Context) ([]domain.IntervalCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntervalCount), args.Error(1)
}

func (m *MockDashboardService) Latest() (*domain.Snapshot, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockDashboardService) Run(ctx context.Context) {
	m.Called(ctx)
}
