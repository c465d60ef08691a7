package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// ApplicationRepository defines data access for loan applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) (*model.Application, error)
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Application, error)
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.Application], error)
	Update(ctx context.Context, a *model.Application) (*model.Application, error)
	Delete(ctx context.Context, id string) error
}
