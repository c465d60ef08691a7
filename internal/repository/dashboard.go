package repository

import (
	"context"
	"time"

	"mortgauge/internal/model"
	"mortgauge/internal/scope"
)

// DashboardRepository runs the read-only aggregate queries behind the
// dashboard endpoints. No cross-row transactional requirement: counts may be
// eventually consistent across a multi-step workflow.
type DashboardRepository interface {
	// Summary computes the four dashboard counters over the scoped
	// collections in one round trip.
	Summary(ctx context.Context, sc scope.Scope) (SummaryCounts, error)

	// RecentApplications returns the most recent scoped applications by
	// creation time descending, truncated to limit.
	RecentApplications(ctx context.Context, sc scope.Scope, limit int) ([]model.Application, error)

	// RecentTasks returns the most recent scoped tasks by creation time
	// descending, truncated to limit.
	RecentTasks(ctx context.Context, sc scope.Scope, limit int) ([]model.Task, error)

	// UpcomingReminders returns incomplete scoped reminders due at or after
	// now, soonest first.
	UpcomingReminders(ctx context.Context, sc scope.Scope, now time.Time) ([]model.Reminder, error)

	// OpenTasks returns scoped tasks still pending or in progress, ordered by
	// due date ascending.
	OpenTasks(ctx context.Context, sc scope.Scope) ([]model.Task, error)
}
