package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, principal string, r io.Reader, p service.UploadDocumentParams) (*model.Document, error) {
	args := m.Called(ctx, principal, r, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, principal, id string) (*model.Document, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, principal string, lq repository.ListQuery) (*service.ListResult[model.Document], error) {
	args := m.Called(ctx, principal, lq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Document]), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, principal, id string, p service.UpdateDocumentParams) (*model.Document, error) {
	args := m.Called(ctx, principal, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, principal, id string) (string, error) {
	args := m.Called(ctx, principal, id)
	return args.String(0), args.Error(1)
}
