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

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. Documents carry no broker column of their
// own; ownership resolves through the client join.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

var documentSpec = listSpec{
	scopeCol: "c.broker_id",
	filterCols: map[string]string{
		"status":         "d.status",
		"document_type":  "d.document_type",
		"client_id":      "d.client_id",
		"application_id": "d.application_id",
	},
	uuidCols:    map[string]bool{"client_id": true, "application_id": true},
	searchCols:  []string{"d.title"},
	sortCols:    map[string]string{"uploaded_at": "d.uploaded_at", "title": "d.title"},
	defaultSort: "d.uploaded_at DESC",
	tiebreak:    "d.id",
}

const documentCols = "id, client_id, application_id, title, document_type, storage_path, " +
	"file_size, content_type, status, notes, uploaded_at"

const documentColsQualified = "d.id, d.client_id, d.application_id, d.title, d.document_type, " +
	"d.storage_path, d.file_size, d.content_type, d.status, d.notes, d.uploaded_at"

func scanDocument(row interface{ Scan(...any) error }, extra ...any) (*model.Document, error) {
	var d model.Document
	dest := []any{
		&d.ID,
		&d.ClientID,
		&d.ApplicationID,
		&d.Title,
		&d.DocumentType,
		&d.StoragePath,
		&d.FileSize,
		&d.ContentType,
		&d.Status,
		&d.Notes,
		&d.UploadedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document metadata row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, client_id, application_id, title, document_type, storage_path,
			file_size, content_type, status, notes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentCols
	out, err := scanDocument(r.db.QueryRowContext(ctx, q,
		d.ID, d.ClientID, d.ApplicationID, d.Title, d.DocumentType, d.StoragePath,
		d.FileSize, d.ContentType, d.Status, d.Notes, d.UploadedAt,
	))
	if err != nil {
		return nil, classify("insert document", err)
	}
	return out, nil
}

// FindByID fetches a document by id together with its owning broker and
// applies the scope contract.
func (r *DocumentPostgres) FindByID(ctx context.Context, sc scope.Scope, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColsQualified + `, c.broker_id
		FROM documents d
		JOIN clients c ON c.id = d.client_id
		WHERE d.id = $1`
	var ownerBrokerID string
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id), &ownerBrokerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document")
		}
		return nil, classify("find document", err)
	}
	if err := checkOwned(sc, ownerBrokerID, "document"); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns a filtered, ordered page of scoped documents with a total count.
func (r *DocumentPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.Document], error) {
	if sc.Empty() {
		return emptyPage[model.Document](), nil
	}
	whereSQL, orderSQL, args, err := documentSpec.build(sc, lq)
	if err != nil {
		return nil, err
	}

	const from = " FROM documents d JOIN clients c ON c.id = d.client_id"

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+from+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count documents", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + documentColsQualified + from + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list documents", err)
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, classify("scan document", err)
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list documents", err)
	}
	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing document row. The
// storage path is immutable after upload.
func (r *DocumentPostgres) Update(ctx context.Context, d *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET application_id = $2, title = $3, document_type = $4, status = $5, notes = $6
		WHERE id = $1
		RETURNING ` + documentCols
	out, err := scanDocument(r.db.QueryRowContext(ctx, q,
		d.ID, d.ApplicationID, d.Title, d.DocumentType, d.Status, d.Notes,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document")
		}
		return nil, classify("update document", err)
	}
	return out, nil
}

// Delete removes a document metadata row by id.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete document", err)
	}
	return nil
}

// StorageKeysByClient lists the object-store keys of a client's documents.
func (r *DocumentPostgres) StorageKeysByClient(ctx context.Context, clientID string) ([]string, error) {
	const q = `SELECT storage_path FROM documents WHERE client_id = $1`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, classify("list document keys", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, classify("scan document key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list document keys", err)
	}
	return keys, nil
}
