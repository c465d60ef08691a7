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

// ApplicationPostgres is a PostgreSQL implementation of
// repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

var applicationSpec = listSpec{
	scopeCol: "broker_id",
	filterCols: map[string]string{
		"status":    "status",
		"client_id": "client_id",
	},
	uuidCols: map[string]bool{"client_id": true},
	sortCols: map[string]string{
		"created_at":  "created_at",
		"updated_at":  "updated_at",
		"loan_amount": "loan_amount",
	},
	defaultSort: "created_at DESC",
}

const applicationCols = "id, client_id, broker_id, loan_amount, property_value, property_address, " +
	"loan_type, status, progress, submitted_date, expected_close_date, notes, created_at, updated_at"

func scanApplication(row interface{ Scan(...any) error }) (*model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.BrokerID,
		&a.LoanAmount,
		&a.PropertyValue,
		&a.PropertyAddress,
		&a.LoanType,
		&a.Status,
		&a.Progress,
		&a.SubmittedDate,
		&a.ExpectedCloseDate,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO applications (id, client_id, broker_id, loan_amount, property_value, property_address,
			loan_type, status, progress, submitted_date, expected_close_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + applicationCols
	out, err := scanApplication(r.db.QueryRowContext(ctx, q,
		a.ID, a.ClientID, a.BrokerID, a.LoanAmount, a.PropertyValue, a.PropertyAddress,
		a.LoanType, a.Status, a.Progress, a.SubmittedDate, a.ExpectedCloseDate, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert application", err)
	}
	return out, nil
}

// FindByID fetches an application by id and applies the scope contract.
func (r *ApplicationPostgres) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Application, error) {
	const q = `SELECT ` + applicationCols + ` FROM applications WHERE id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("application")
		}
		return nil, classify("find application", err)
	}
	if err := checkOwned(sc, a.BrokerID, "application"); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a filtered, ordered page of scoped applications with a total count.
func (r *ApplicationPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Application], error) {
	if sc.Empty() {
		return emptyPage[model.Application](), nil
	}
	whereSQL, orderSQL, args, err := applicationSpec.build(sc, lq)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count applications", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + applicationCols + " FROM applications" + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list applications", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, classify("scan application", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list applications", err)
	}
	return &repository.PageResult[model.Application]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing application row.
func (r *ApplicationPostgres) Update(ctx context.Context, a *model.Application) (*model.Application, error) {
	const q = `
		UPDATE applications
		SET loan_amount = $2, property_value = $3, property_address = $4, loan_type = $5,
			status = $6, progress = $7, submitted_date = $8, expected_close_date = $9,
			notes = $10, updated_at = $11
		WHERE id = $1
		RETURNING ` + applicationCols
	out, err := scanApplication(r.db.QueryRowContext(ctx, q,
		a.ID, a.LoanAmount, a.PropertyValue, a.PropertyAddress, a.LoanType,
		a.Status, a.Progress, a.SubmittedDate, a.ExpectedCloseDate, a.Notes, a.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("application")
		}
		return nil, classify("update application", err)
	}
	return out, nil
}

// Delete removes an application by id. Dependent documents, tasks, and
// reminders cascade; the owning client does not.
func (r *ApplicationPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM applications WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete application", err)
	}
	return nil
}
