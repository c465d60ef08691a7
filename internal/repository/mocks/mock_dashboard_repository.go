package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Summary(ctx context.Context, sc scope.Scope) (repository.SummaryCounts, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(repository.SummaryCounts), args.Error(1)
}

func (m *MockDashboardRepository) RecentApplications(ctx context.Context, sc scope.Scope, limit int) ([]model.Application, error) {
	args := m.Called(ctx, sc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockDashboardRepository) RecentTasks(ctx context.Context, sc scope.Scope, limit int) ([]model.Task, error) {
	args := m.Called(ctx, sc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockDashboardRepository) UpcomingReminders(ctx context.Context, sc scope.Scope, now time.Time) ([]model.Reminder, error) {
	args := m.Called(ctx, sc, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reminder), args.Error(1)
}

func (m *MockDashboardRepository) OpenTasks(ctx context.Context, sc scope.Scope) ([]model.Task, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}
