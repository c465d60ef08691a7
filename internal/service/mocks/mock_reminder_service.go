package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) Create(ctx context.Context, principal string, p service.CreateReminderParams) (*model.Reminder, error) {
	args := m.Called(ctx, principal, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) Get(ctx context.Context, principal, id string) (*model.Reminder, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.Reminder], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Reminder]), args.Error(1)
}

func (m *MockReminderService) Update(ctx context.Context, principal, id string, p service.UpdateReminderParams) (*model.Reminder, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}
