package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, principal string, p service.CreateClientParams) (*model.Client, error) {
	args := m.Called(ctx, principal, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, principal, id string) (*model.Client, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.Client], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Client]), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, principal, id string, p service.UpdateClientParams) (*model.Client, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}
