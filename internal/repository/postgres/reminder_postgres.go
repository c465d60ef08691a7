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

// ReminderPostgres is a PostgreSQL implementation of repository.ReminderRepository.
type ReminderPostgres struct {
	db *sql.DB
}

// NewReminderPostgres creates a new ReminderPostgres repository.
func NewReminderPostgres(db *sql.DB) *ReminderPostgres {
	return &ReminderPostgres{db: db}
}

var _ repository.ReminderRepository = (*ReminderPostgres)(nil)

var reminderSpec = listSpec{
	scopeCol: "broker_id",
	filterCols: map[string]string{
		"reminder_type": "reminder_type",
		"is_completed":  "is_completed",
		"client_id":     "client_id",
	},
	boolCols: map[string]bool{"is_completed": true},
	uuidCols: map[string]bool{"client_id": true},
	sortCols: map[string]string{
		"due_date":   "due_date",
		"created_at": "created_at",
	},
	defaultSort: "due_date ASC",
}

const reminderCols = "id, broker_id, client_id, application_id, title, description, due_date, " +
	"reminder_type, is_completed, created_at, updated_at"

func scanReminder(row interface{ Scan(...any) error }) (*model.Reminder, error) {
	var m model.Reminder
	err := row.Scan(
		&m.ID,
		&m.BrokerID,
		&m.ClientID,
		&m.ApplicationID,
		&m.Title,
		&m.Description,
		&m.DueDate,
		&m.ReminderType,
		&m.IsCompleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new reminder row and returns the stored record.
func (r *ReminderPostgres) Create(ctx context.Context, m *model.Reminder) (*model.Reminder, error) {
	const q = `
		INSERT INTO reminders (id, broker_id, client_id, application_id, title, description, due_date,
			reminder_type, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + reminderCols
	out, err := scanReminder(r.db.QueryRowContext(ctx, q,
		m.ID, m.BrokerID, m.ClientID, m.ApplicationID, m.Title, m.Description, m.DueDate,
		m.ReminderType, m.IsCompleted, m.CreatedAt, m.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert reminder", err)
	}
	return out, nil
}

// FindByID fetches a reminder by id and applies the scope contract.
func (r *ReminderPostgres) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Reminder, error) {
	const q = `SELECT ` + reminderCols + ` FROM reminders WHERE id = $1`
	m, err := scanReminder(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("reminder")
		}
		return nil, classify("find reminder", err)
	}
	if err := checkOwned(sc, m.BrokerID, "reminder"); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns a filtered, ordered page of scoped reminders with a total count.
func (r *ReminderPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Reminder], error) {
	if sc.Empty() {
		return emptyPage[model.Reminder](), nil
	}
	whereSQL, orderSQL, args, err := reminderSpec.build(sc, lq)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reminders"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count reminders", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + reminderCols + " FROM reminders" + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list reminders", err)
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
		return nil, classify("list reminders", err)
	}
	return &repository.PageResult[model.Reminder]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing reminder row.
func (r *ReminderPostgres) Update(ctx context.Context, m *model.Reminder) (*model.Reminder, error) {
	const q = `
		UPDATE reminders
		SET client_id = $2, application_id = $3, title = $4, description = $5, due_date = $6,
			reminder_type = $7, is_completed = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + reminderCols
	out, err := scanReminder(r.db.QueryRowContext(ctx, q,
		m.ID, m.ClientID, m.ApplicationID, m.Title, m.Description, m.DueDate,
		m.ReminderType, m.IsCompleted, m.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("reminder")
		}
		return nil, classify("update reminder", err)
	}
	return out, nil
}

// Delete removes a reminder by id.
func (r *ReminderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reminders WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete reminder", err)
	}
	return nil
}
