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

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

var clientSpec = listSpec{
	scopeCol: "broker_id",
	filterCols: map[string]string{
		"status": "status",
	},
	searchCols:  []string{"name", "email", "phone"},
	sortCols:    map[string]string{"created_at": "created_at", "updated_at": "updated_at", "name": "name"},
	defaultSort: "created_at DESC",
}

const clientCols = "id, broker_id, name, email, phone, address, status, notes, created_at, updated_at"

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID,
		&c.BrokerID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Status,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client row and returns the stored record.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (id, broker_id, name, email, phone, address, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + clientCols
	out, err := scanClient(r.db.QueryRowContext(ctx, q,
		c.ID, c.BrokerID, c.Name, c.Email, c.Phone, c.Address, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert client", err)
	}
	return out, nil
}

// FindByID fetches a client by id and applies the scope contract.
func (r *ClientPostgres) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("client")
		}
		return nil, classify("find client", err)
	}
	if err := checkOwned(sc, c.BrokerID, "client"); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a filtered, ordered page of scoped clients with a total count.
func (r *ClientPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Client], error) {
	if sc.Empty() {
		return emptyPage[model.Client](), nil
	}
	whereSQL, orderSQL, args, err := clientSpec.build(sc, lq)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count clients", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + clientCols + " FROM clients" + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list clients", err)
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, classify("scan client", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list clients", err)
	}
	return &repository.PageResult[model.Client]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing client row.
func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + clientCols
	out, err := scanClient(r.db.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.Status, c.Notes, c.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("client")
		}
		return nil, classify("update client", err)
	}
	return out, nil
}

// Delete removes a client by id. Applications, documents, tasks, and
// reminders referencing it go with it via ON DELETE CASCADE.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete client", err)
	}
	return nil
}
