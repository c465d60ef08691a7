package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// ClientRepository defines data access for clients.
//
// Scoped reads follow one contract everywhere: a row that does not exist at
// all yields a not-found error, a row that exists outside the scope yields an
// authorization error. Callers decide how much of that distinction to expose.
type ClientRepository interface {
	// Create inserts a new client row and returns the stored record.
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByID returns a client by id, honoring the scope contract above.
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Client, error)

	// List returns a filtered, ordered page of scoped clients and the total
	// row count for the query.
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.Client], error)

	// Update rewrites the mutable columns of an existing row.
	Update(ctx context.Context, c *model.Client) (*model.Client, error)

	// Delete removes a client by id. Dependent applications, documents,
	// tasks, and reminders are removed by the store's cascade rules.
	Delete(ctx context.Context, id string) error
}
