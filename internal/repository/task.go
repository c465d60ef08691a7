package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Task, error)
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.Task], error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}
