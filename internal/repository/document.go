package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// DocumentRepository defines data access for document metadata. Documents are
// owned transitively: the scope predicate resolves through the client join.
type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) (*model.Document, error)
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Document, error)
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.Document], error)
	Update(ctx context.Context, d *model.Document) (*model.Document, error)
	Delete(ctx context.Context, id string) error

	// StorageKeysByClient returns the object-store keys of every document
	// attached to the client, so callers can remove the objects when the
	// rows go away with a client cascade delete.
	StorageKeysByClient(ctx context.Context, clientID string) ([]string, error)
}
