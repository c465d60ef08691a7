package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
	"mortgauge/internal/storage"
)

// DefaultDownloadExpiry bounds how long a presigned download URL stays valid.
const DefaultDownloadExpiry = 15 * time.Minute

// UploadDocumentParams is the metadata accompanying an uploaded file.
type UploadDocumentParams struct {
	ClientID      string
	ApplicationID *string
	Title         string
	DocumentType  string
	Notes         string
	Filename      string
	ContentType   string
	Size          int64
}

// UpdateDocumentParams carries a partial metadata update; nil fields are left
// untouched. The stored object itself is immutable.
type UpdateDocumentParams struct {
	Title        *string `json:"title"`
	DocumentType *string `json:"document_type"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

// DocumentService defines the use cases for handling client documents.
type DocumentService interface {
	// Upload streams the content to object storage, saves metadata, and rolls
	// back the stored object if the metadata save fails.
	Upload(ctx context.Context, principal string, r io.Reader, p UploadDocumentParams) (*model.Document, error)
	Get(ctx context.Context, principal, id string) (*model.Document, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Document], error)
	Update(ctx context.Context, principal, id string, p UpdateDocumentParams) (*model.Document, error)
	Delete(ctx context.Context, principal, id string) error
	// DownloadURL returns a time-limited presigned URL for the document body.
	DownloadURL(ctx context.Context, principal, id string) (string, error)
}

type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	clients repository.ClientRepository
	apps    repository.ApplicationRepository
	scoper  *scope.Scoper
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, clients repository.ClientRepository, apps repository.ApplicationRepository, scoper *scope.Scoper) DocumentService {
	return &documentService{store: store, repo: repo, clients: clients, apps: apps, scoper: scoper}
}

func (s *documentService) Upload(ctx context.Context, principal string, r io.Reader, p UploadDocumentParams) (*model.Document, error) {
	if r == nil {
		return nil, apperr.Validation("file", "is required")
	}
	if p.ClientID == "" {
		return nil, apperr.Validation("client_id", "is required")
	}
	docType := model.DocumentOther
	if p.DocumentType != "" {
		docType = model.DocumentType(p.DocumentType)
		if !docType.Valid() {
			return nil, apperr.Validation("document_type", "unknown document type")
		}
	}
	title := p.Title
	if title == "" {
		title = p.Filename
	}
	if title == "" {
		return nil, apperr.Validation("title", "is required")
	}

	// Documents are owned through their client; the scoped lookup doubles as
	// the authorization check.
	clientScope, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, clientScope, p.ClientID)
	if err != nil {
		return nil, err
	}
	if p.ApplicationID != nil && *p.ApplicationID != "" {
		appScope, err := s.scoper.For(principal, scope.KindApplication)
		if err != nil {
			return nil, err
		}
		app, err := s.apps.FindByID(ctx, appScope, *p.ApplicationID)
		if err != nil {
			return nil, err
		}
		if app.ClientID != client.ID {
			return nil, apperr.Validation("application_id", "application belongs to a different client")
		}
	} else {
		p.ApplicationID = nil
	}

	ext := filepath.Ext(p.Filename)
	key := filepath.ToSlash(filepath.Join("documents", client.ID, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        p.Size,
		ContentType: p.ContentType,
		Metadata: map[string]string{
			"original-filename": p.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:            uuid.New().String(),
		ClientID:      client.ID,
		ApplicationID: p.ApplicationID,
		Title:         title,
		DocumentType:  docType,
		StoragePath:   objInfo.Key,
		FileSize:      objInfo.Size,
		ContentType:   objInfo.ContentType,
		Status:        model.DocumentPending,
		Notes:         p.Notes,
		UploadedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, err
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, principal, id string) (*model.Document, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindDocument)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sc, id)
}

func (s *documentService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Document], error) {
	sc, err := s.scoper.For(principal, scope.KindDocument)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Document]{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Update(ctx context.Context, principal, id string, p UpdateDocumentParams) (*model.Document, error) {
	sc, err := s.scoper.For(principal, scope.KindDocument)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		if *p.Title == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		doc.Title = *p.Title
	}
	if p.DocumentType != nil {
		docType := model.DocumentType(*p.DocumentType)
		if !docType.Valid() {
			return nil, apperr.Validation("document_type", "unknown document type")
		}
		doc.DocumentType = docType
	}
	if p.Status != nil {
		status := model.DocumentStatus(*p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "unknown document status")
		}
		doc.Status = status
	}
	if p.Notes != nil {
		doc.Notes = *p.Notes
	}
	return s.repo.Update(ctx, doc)
}

// Delete removes the stored object first; if that fails the metadata row is
// kept so the reference is not lost.
func (s *documentService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindDocument)
	if err != nil {
		return err
	}
	doc, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) DownloadURL(ctx context.Context, principal, id string) (string, error) {
	sc, err := s.scoper.For(principal, scope.KindDocument)
	if err != nil {
		return "", err
	}
	doc, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, DefaultDownloadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}
