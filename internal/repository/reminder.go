package repository

import (
	"context"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, r *model.Reminder) (*model.Reminder, error)
	FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Reminder, error)
	List(ctx context.Context, sc scope.Scope, lq ListQuery) (*PageResult[model.Reminder], error)
	Update(ctx context.Context, r *model.Reminder) (*model.Reminder, error)
	Delete(ctx context.Context, id string) error
}
