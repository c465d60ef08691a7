package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, r *model.Reminder) (*model.Reminder, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Reminder, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Reminder], error) {
	args := m.Called(ctx, sc, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Reminder]), args.Error(1)
}

func (m *MockReminderRepository) Update(ctx context.Context, r *model.Reminder) (*model.Reminder, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
