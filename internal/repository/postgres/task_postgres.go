package postgres

import (
	"context"
	"database/sql"
	"errors"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// TaskPostgres is a PostgreSQL implementation of repository.TaskRepository.
type TaskPostgres struct {
	db *sql.DB
}

// NewTaskPostgres creates a new TaskPostgres repository.
func NewTaskPostgres(db *sql.DB) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

var taskSpec = listSpec{
	scopeCol: "broker_id",
	filterCols: map[string]string{
		"status":         "status",
		"priority":       "priority",
		"client_id":      "client_id",
		"application_id": "application_id",
	},
	uuidCols:   map[string]bool{"client_id": true, "application_id": true},
	searchCols: []string{"title", "description"},
	sortCols: map[string]string{
		"due_date":   "due_date",
		"created_at": "created_at",
		"priority":   "priority",
	},
	defaultSort: "due_date ASC",
}

const taskCols = "id, broker_id, client_id, application_id, title, description, due_date, " +
	"priority, status, completed_at, created_at, updated_at"

func scanTask(row interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID,
		&t.BrokerID,
		&t.ClientID,
		&t.ApplicationID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.Status,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new task row and returns the stored record.
func (r *TaskPostgres) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		INSERT INTO tasks (id, broker_id, client_id, application_id, title, description, due_date,
			priority, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + taskCols
	out, err := scanTask(r.db.QueryRowContext(ctx, q,
		t.ID, t.BrokerID, t.ClientID, t.ApplicationID, t.Title, t.Description, t.DueDate,
		t.Priority, t.Status, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert task", err)
	}
	return out, nil
}

// FindByID fetches a task by id and applies the scope contract.
func (r *TaskPostgres) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("task")
		}
		return nil, classify("find task", err)
	}
	if err := checkOwned(sc, t.BrokerID, "task"); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns a filtered, ordered page of scoped tasks with a total count.
func (r *TaskPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Task], error) {
	if sc.Empty() {
		return emptyPage[model.Task](), nil
	}
	whereSQL, orderSQL, args, err := taskSpec.build(sc, lq)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count tasks", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + taskCols + " FROM tasks" + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list tasks", err)
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
		return nil, classify("list tasks", err)
	}
	return &repository.PageResult[model.Task]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing task row.
func (r *TaskPostgres) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		UPDATE tasks
		SET client_id = $2, application_id = $3, title = $4, description = $5, due_date = $6,
			priority = $7, status = $8, completed_at = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + taskCols
	out, err := scanTask(r.db.QueryRowContext(ctx, q,
		t.ID, t.ClientID, t.ApplicationID, t.Title, t.Description, t.DueDate,
		t.Priority, t.Status, t.CompletedAt, t.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("task")
		}
		return nil, classify("update task", err)
	}
	return out, nil
}

// Delete removes a task by id.
func (r *TaskPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete task", err)
	}
	return nil
}
