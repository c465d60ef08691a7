package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Application, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Application], error) {
	args := m.Called(ctx, sc, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Application]), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
