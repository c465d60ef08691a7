package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Client, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Client], error) {
	args := m.Called(ctx, sc, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Client]), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
