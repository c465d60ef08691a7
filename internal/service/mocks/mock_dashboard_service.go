package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/service"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, principal string) (*service.DashboardSummary, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardSummary), args.Error(1)
}

func (m *MockDashboardService) Activity(ctx context.Context, principal string, limit int) (*service.DashboardActivity, error) {
	args := m.Called(ctx, principal, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardActivity), args.Error(1)
}

func (m *MockDashboardService) UpcomingReminders(ctx context.Context, principal string) ([]model.Reminder, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reminder), args.Error(1)
}

func (m *MockDashboardService) OpenTasks(ctx context.Context, principal string) ([]model.Task, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}
