package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, principal string, p service.CreateTaskParams) (*model.Task, error) {
	args := m.Called(ctx, principal, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, principal, id string) (*model.Task, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.Task], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Task]), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, principal, id string, p service.UpdateTaskParams) (*model.Task, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}
