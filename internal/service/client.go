package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
	"mortgauge/internal/storage"
)

// CreateClientParams is the write payload for a new client.
type CreateClientParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// UpdateClientParams carries a partial update; nil fields are left untouched.
type UpdateClientParams struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
}

// ClientService defines the use cases for managing clients.
type ClientService interface {
	Create(ctx context.Context, principal string, p CreateClientParams) (*model.Client, error)
	Get(ctx context.Context, principal, id string) (*model.Client, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Client], error)
	Update(ctx context.Context, principal, id string, p UpdateClientParams) (*model.Client, error)
	Delete(ctx context.Context, principal, id string) error
}

type clientService struct {
	repo   repository.ClientRepository
	docs   repository.DocumentRepository
	store  storage.Storage
	scoper *scope.Scoper
	log    *zap.Logger
}

// NewClientService constructs a new ClientService.
func NewClientService(repo repository.ClientRepository, docs repository.DocumentRepository, store storage.Storage, scoper *scope.Scoper, log *zap.Logger) ClientService {
	return &clientService{repo: repo, docs: docs, store: store, scoper: scoper, log: log}
}

func (s *clientService) Create(ctx context.Context, principal string, p CreateClientParams) (*model.Client, error) {
	if principal == scope.Anonymous {
		return nil, apperr.Forbidden("client")
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, apperr.Validation("email", "is required")
	}
	status := model.ClientActive
	if p.Status != "" {
		status = model.ClientStatus(p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "must be one of active, pending, completed, inactive")
		}
	}

	now := time.Now().UTC()
	c := &model.Client{
		ID:        uuid.New().String(),
		BrokerID:  principal,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Status:    status,
		Notes:     p.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, principal, id string) (*model.Client, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sc, id)
}

func (s *clientService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Client], error) {
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Client]{Items: res.Items, Total: res.Total}, nil
}

func (s *clientService) Update(ctx context.Context, principal, id string, p UpdateClientParams) (*model.Client, error) {
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		c.Name = *p.Name
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return nil, apperr.Validation("email", "must not be empty")
		}
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Status != nil {
		status := model.ClientStatus(*p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "must be one of active, pending, completed, inactive")
		}
		c.Status = status
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	c.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return err
	}
	// Scoped fetch first so a foreign row fails authorization instead of
	// silently deleting.
	if _, err := s.repo.FindByID(ctx, sc, id); err != nil {
		return err
	}
	// Collect object keys before the cascade removes the document rows.
	keys, err := s.docs.StorageKeysByClient(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// The rows are already gone; a leftover object only wastes space, so
	// storage failures are logged rather than surfaced.
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn("orphaned document object after client delete",
				zap.String("client_id", id),
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return nil
}
