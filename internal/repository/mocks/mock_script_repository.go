package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

type MockScriptRepository struct {
	mock.Mock
}

func (m *MockScriptRepository) Create(ctx context.Context, s *model.InterviewScript, sectionIDs []string) (*model.InterviewScript, error) {
	args := m.Called(ctx, s, sectionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptRepository) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.InterviewScript, error) {
	args := m.Called(ctx, sc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptRepository) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.InterviewScript], error) {
	args := m.Called(ctx, sc, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.InterviewScript]), args.Error(1)
}

func (m *MockScriptRepository) Update(ctx context.Context, s *model.InterviewScript) (*model.InterviewScript, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewScript), args.Error(1)
}

func (m *MockScriptRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) Create(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockSectionRepository) FindByID(ctx context.Context, id string) (*model.ScriptSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockSectionRepository) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.ScriptSection], error) {
	args := m.Called(ctx, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ScriptSection]), args.Error(1)
}

func (m *MockSectionRepository) Update(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScriptSection), args.Error(1)
}

func (m *MockSectionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
