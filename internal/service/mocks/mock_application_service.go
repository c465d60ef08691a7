package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Create(ctx context.Context, principal string, p service.CreateApplicationParams) (*model.Application, error) {
	args := m.Called(ctx, principal, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, principal, id string) (*model.Application, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.Application], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Application]), args.Error(1)
}

func (m *MockApplicationService) Update(ctx context.Context, principal, id string, p service.UpdateApplicationParams) (*model.Application, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, principal, id, status string, progress *int) (*model.Application, error) {
	args := m.Called(ctx, principal, id, status, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}
