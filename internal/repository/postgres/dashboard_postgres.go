package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// DashboardPostgres runs the read-only aggregate queries behind the dashboard
// endpoints. Counts are computed in a single round trip; each list helper is
// one more. No multi-row transaction: dashboard numbers may trail writes.
type DashboardPostgres struct {
	db *sql.DB
}

// NewDashboardPostgres creates a new DashboardPostgres repository.
func NewDashboardPostgres(db *sql.DB) *DashboardPostgres {
	return &DashboardPostgres{db: db}
}

var _ repository.DashboardRepository = (*DashboardPostgres)(nil)

// placeholders renders "$n, $n+1, ..." for count values starting at n.
func placeholders(n, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = "$" + itoa(n+i)
	}
	return strings.Join(parts, ", ")
}

// Summary computes the four dashboard counters over the scoped collections.
// The in-flight application subset comes from the single named constant; it
// is never restated here.
func (r *DashboardPostgres) Summary(ctx context.Context, sc scope.Scope) (repository.SummaryCounts, error) {
	var counts repository.SummaryCounts
	if sc.Empty() {
		return counts, nil
	}

	var args []any
	brokerCond := func() string { return "" }
	if !sc.All {
		args = append(args, sc.BrokerID)
		brokerCond = func() string { return "broker_id = $1 AND " }
	}

	inflightStart := len(args) + 1
	for _, s := range model.InFlightApplicationStatuses {
		args = append(args, string(s))
	}
	pendingArg := len(args) + 1
	args = append(args, string(model.TaskPending))

	q := `
		SELECT
			(SELECT COUNT(*) FROM clients WHERE ` + brokerCond() + `TRUE) AS total_clients,
			(SELECT COUNT(*) FROM applications WHERE ` + brokerCond() + `status IN (` +
		placeholders(inflightStart, len(model.InFlightApplicationStatuses)) + `)) AS active_applications,
			(SELECT COUNT(*) FROM tasks WHERE ` + brokerCond() + `status = $` + itoa(pendingArg) + `) AS pending_tasks,
			(SELECT COUNT(*) FROM reminders WHERE ` + brokerCond() + `is_completed = false) AS upcoming_reminders`

	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&counts.TotalClients,
		&counts.ActiveApplications,
		&counts.PendingTasks,
		&counts.UpcomingReminders,
	)
	if err != nil {
		return repository.SummaryCounts{}, classify("dashboard summary", err)
	}
	return counts, nil
}

// RecentApplications returns the newest scoped applications, creation time
// descending.
func (r *DashboardPostgres) RecentApplications(ctx context.Context, sc scope.Scope, limit int) ([]model.Application, error) {
	if sc.Empty() {
		return []model.Application{}, nil
	}
	where, args := scopeWhere(sc)
	args = append(args, limit)
	q := "SELECT " + applicationCols + " FROM applications" + where +
		" ORDER BY created_at DESC, id LIMIT $" + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("recent applications", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0, limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, classify("scan application", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("recent applications", err)
	}
	return items, nil
}

// RecentTasks returns the newest scoped tasks, creation time descending.
func (r *DashboardPostgres) RecentTasks(ctx context.Context, sc scope.Scope, limit int) ([]model.Task, error) {
	if sc.Empty() {
		return []model.Task{}, nil
	}
	where, args := scopeWhere(sc)
	args = append(args, limit)
	q := "SELECT " + taskCols + " FROM tasks" + where +
		" ORDER BY created_at DESC, id LIMIT $" + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("recent tasks", err)
	}
	defer rows.Close()

	items := make([]model.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, classify("scan task", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("recent tasks", err)
	}
	return items, nil
}

// UpcomingReminders returns incomplete scoped reminders due at or after now,
// soonest first.
func (r *DashboardPostgres) UpcomingReminders(ctx context.Context, sc scope.Scope, now time.Time) ([]model.Reminder, error) {
	if sc.Empty() {
		return []model.Reminder{}, nil
	}
	where, args := scopeWhere(sc)
	if where == "" {
		where = " WHERE"
	} else {
		where += " AND"
	}
	args = append(args, now)
	q := "SELECT " + reminderCols + " FROM reminders" + where +
		" is_completed = false AND due_date >= $" + itoa(len(args)) +
		" ORDER BY due_date, id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("upcoming reminders", err)
	}
	defer rows.Close()

	items := make([]model.Reminder, 0)
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, classify("scan reminder", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("upcoming reminders", err)
	}
	return items, nil
}

// OpenTasks returns scoped tasks still pending or in progress, due soonest
// first.
func (r *DashboardPostgres) OpenTasks(ctx context.Context, sc scope.Scope) ([]model.Task, error) {
	if sc.Empty() {
		return []model.Task{}, nil
	}
	where, args := scopeWhere(sc)
	if where == "" {
		where = " WHERE"
	} else {
		where += " AND"
	}
	n := len(args)
	args = append(args, string(model.TaskPending), string(model.TaskInProgress))
	q := "SELECT " + taskCols + " FROM tasks" + where +
		" status IN (" + placeholders(n+1, 2) + ") ORDER BY due_date, id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("open tasks", err)
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, classify("scan task", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("open tasks", err)
	}
	return items, nil
}

// scopeWhere renders the broker predicate for direct-owned tables.
func scopeWhere(sc scope.Scope) (string, []any) {
	if sc.All {
		return "", nil
	}
	return " WHERE broker_id = $1", []any{sc.BrokerID}
}
