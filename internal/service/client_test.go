package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	repoMocks "mortgauge/internal/repository/mocks"
	"mortgauge/internal/scope"
	storeMocks "mortgauge/internal/storage/mocks"
)

func newClientService(repo *repoMocks.MockClientRepository, docs *repoMocks.MockDocumentRepository, store *storeMocks.MockStorage) ClientService {
	return NewClientService(repo, docs, store, scope.New(true), zap.NewNop())
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		principal  string
		params     CreateClientParams
		setupMocks func(mRepo *repoMocks.MockClientRepository)
		wantErr    func(t *testing.T, err error)
	}{
		{
			name:      "happy path with default status",
			principal: "broker-1",
			params:    CreateClientParams{Name: "Jane Doe", Email: "jane@example.com"},
			setupMocks: func(mRepo *repoMocks.MockClientRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
					return c.BrokerID == "broker-1" &&
						c.Status == model.ClientActive &&
						c.ID != "" &&
						!c.CreatedAt.IsZero()
				})).Return(&model.Client{ID: "gen-id"}, nil)
			},
		},
		{
			name:      "anonymous principal is forbidden",
			principal: "",
			params:    CreateClientParams{Name: "Jane", Email: "jane@example.com"},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsAuthorization(err))
			},
		},
		{
			name:      "missing name fails validation",
			principal: "broker-1",
			params:    CreateClientParams{Email: "jane@example.com"},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsValidation(err))
			},
		},
		{
			name:      "status outside the declared set fails validation",
			principal: "broker-1",
			params:    CreateClientParams{Name: "Jane", Email: "jane@example.com", Status: "archived"},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, apperr.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockClientRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(mRepo)
			}
			svc := newClientService(mRepo, new(repoMocks.MockDocumentRepository), new(storeMocks.MockStorage))

			c, err := svc.Create(ctx, tt.principal, tt.params)

			if tt.wantErr != nil {
				tt.wantErr(t, err)
				assert.Nil(t, c)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, c)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestClientService_Update(t *testing.T) {
	ctx := context.Background()
	brokerScope := scope.Scope{BrokerID: "broker-1"}

	t.Run("applies only provided fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		svc := newClientService(mRepo, new(repoMocks.MockDocumentRepository), new(storeMocks.MockStorage))

		existing := &model.Client{
			ID: "client-1", BrokerID: "broker-1",
			Name: "Jane", Email: "jane@example.com", Phone: "555",
			Status: model.ClientActive,
		}
		mRepo.On("FindByID", ctx, brokerScope, "client-1").Return(existing, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(c *model.Client) bool {
			return c.Name == "Jane Smith" && c.Email == "jane@example.com" && c.Phone == "555"
		})).Return(existing, nil)

		name := "Jane Smith"
		_, err := svc.Update(ctx, "broker-1", "client-1", UpdateClientParams{Name: &name})
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("foreign row surfaces authorization", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		svc := newClientService(mRepo, new(repoMocks.MockDocumentRepository), new(storeMocks.MockStorage))

		mRepo.On("FindByID", ctx, brokerScope, "client-2").
			Return(nil, apperr.Forbidden("client"))

		_, err := svc.Update(ctx, "broker-1", "client-2", UpdateClientParams{})
		assert.True(t, apperr.IsAuthorization(err))
		mRepo.AssertExpectations(t)
	})
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	brokerScope := scope.Scope{BrokerID: "broker-1"}

	t.Run("checks ownership before deleting", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newClientService(mRepo, mDocs, new(storeMocks.MockStorage))

		mRepo.On("FindByID", ctx, brokerScope, "client-1").
			Return(&model.Client{ID: "client-1", BrokerID: "broker-1"}, nil)
		mDocs.On("StorageKeysByClient", ctx, "client-1").Return([]string{}, nil)
		mRepo.On("Delete", ctx, "client-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "broker-1", "client-1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("never deletes a foreign row", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		svc := newClientService(mRepo, new(repoMocks.MockDocumentRepository), new(storeMocks.MockStorage))

		mRepo.On("FindByID", ctx, brokerScope, "client-2").
			Return(nil, apperr.Forbidden("client"))

		err := svc.Delete(ctx, "broker-1", "client-2")
		assert.True(t, apperr.IsAuthorization(err))
		mRepo.AssertNotCalled(t, "Delete", ctx, "client-2")
	})

	t.Run("removes stored objects after the cascade", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		mDocs := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := newClientService(mRepo, mDocs, mStore)

		mRepo.On("FindByID", ctx, brokerScope, "client-1").
			Return(&model.Client{ID: "client-1", BrokerID: "broker-1"}, nil)
		mDocs.On("StorageKeysByClient", ctx, "client-1").
			Return([]string{"documents/client-1/a.pdf", "documents/client-1/b.pdf"}, nil)
		mRepo.On("Delete", ctx, "client-1").Return(nil)
		mStore.On("Delete", ctx, "documents/client-1/a.pdf").Return(nil)
		mStore.On("Delete", ctx, "documents/client-1/b.pdf").Return(nil)

		require.NoError(t, svc.Delete(ctx, "broker-1", "client-1"))
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
	})

	t.Run("a storage failure does not undo the delete", func(t *testing.T) {
		mRepo := new(repoMocks.MockClientRepository)
		mDocs := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := newClientService(mRepo, mDocs, mStore)

		mRepo.On("FindByID", ctx, brokerScope, "client-1").
			Return(&model.Client{ID: "client-1", BrokerID: "broker-1"}, nil)
		mDocs.On("StorageKeysByClient", ctx, "client-1").
			Return([]string{"documents/client-1/a.pdf"}, nil)
		mRepo.On("Delete", ctx, "client-1").Return(nil)
		mStore.On("Delete", ctx, "documents/client-1/a.pdf").
			Return(errors.New("connection refused"))

		assert.NoError(t, svc.Delete(ctx, "broker-1", "client-1"))
		mStore.AssertExpectations(t)
	})
}

func TestClientService_List(t *testing.T) {
	ctx := context.Background()
	brokerScope := scope.Scope{BrokerID: "broker-1"}

	mRepo := new(repoMocks.MockClientRepository)
	svc := newClientService(mRepo, new(repoMocks.MockDocumentRepository), new(storeMocks.MockStorage))

	lq := repository.ListQuery{Filters: map[string]string{"status": "active"}, Limit: 20}
	mRepo.On("List", ctx, brokerScope, lq).
		Return(&repository.PageResult[model.Client]{
			Items: []model.Client{{ID: "1"}, {ID: "2"}},
			Total: 2,
		}, nil)

	res, err := svc.List(ctx, "broker-1", lq)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
	mRepo.AssertExpectations(t)
}
