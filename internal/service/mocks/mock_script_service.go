package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockScriptService struct {
	mock.Mock
}

func (m *MockScriptService) Create(ctx context.Context, principal string, p service.CreateScriptParams) (*model.InterviewScript, error) {
	args := m.Called(ctx, principal, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptService) Get(ctx context.Context, principal, id string) (*model.InterviewScript, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.InterviewScript], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.InterviewScript]), args.Error(1)
}

func (m *MockScriptService) Update(ctx context.Context, principal, id string, p service.UpdateScriptParams) (*model.InterviewScript, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func (m *MockScriptService) CreateSection(ctx context.Context, p service.CreateSectionParams) (*model.ScriptSection, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockScriptService) GetSection(ctx context.Context, id string) (*model.ScriptSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockScriptService) ListSections(ctx context.Context, lq repository.ListQuery) (*service.ListResult[model.ScriptSection], error) {
	args := m.Called(ctx, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ScriptSection]), args.Error(1)
}

func (m *MockScriptService) UpdateSection(ctx context.Context, id string, p service.UpdateSectionParams) (*model.ScriptSection, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockScriptService) DeleteSection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
