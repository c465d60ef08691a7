package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Document, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Document], error) {
	args := m.Called(ctx, sc, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Document]), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, d *model.Document) (*model.Document, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) StorageKeysByClient(ctx context.Context, clientID string) ([]string, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
