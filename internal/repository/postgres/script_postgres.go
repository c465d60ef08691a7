package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// ScriptPostgres is a PostgreSQL implementation of repository.ScriptRepository.
// Sections are shared rows linked through interview_script_sections; the link
// table's serial id preserves insertion order for order_index ties.
type ScriptPostgres struct {
	db *sql.DB
}

// NewScriptPostgres creates a new ScriptPostgres repository.
func NewScriptPostgres(db *sql.DB) *ScriptPostgres {
	return &ScriptPostgres{db: db}
}

var _ repository.ScriptRepository = (*ScriptPostgres)(nil)

var scriptSpec = listSpec{
	filterCols: map[string]string{
		"script_type": "script_type",
		"is_active":   "is_active",
	},
	boolCols:   map[string]bool{"is_active": true},
	searchCols: []string{"title", "description"},
	sortCols: map[string]string{
		"created_at":     "created_at",
		"updated_at":     "updated_at",
		"total_duration": "total_duration",
	},
	defaultSort: "updated_at DESC",
}

const scriptCols = "id, title, description, script_type, version, is_active, total_duration, " +
	"general_notes, created_at, updated_at"

func scanScript(row interface{ Scan(...any) error }) (*model.InterviewScript, error) {
	var s model.InterviewScript
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.ScriptType,
		&s.Version,
		&s.IsActive,
		&s.TotalDuration,
		&s.GeneralNotes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts the script row and links the given sections in order, all in
// one transaction.
func (r *ScriptPostgres) Create(ctx context.Context, s *model.InterviewScript, sectionIDs []string) (*model.InterviewScript, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("begin create script", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO interview_scripts (id, title, description, script_type, version, is_active,
			total_duration, general_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + scriptCols
	out, err := scanScript(tx.QueryRowContext(ctx, q,
		s.ID, s.Title, s.Description, s.ScriptType, s.Version, s.IsActive,
		s.TotalDuration, s.GeneralNotes, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert script", err)
	}

	const link = `INSERT INTO interview_script_sections (script_id, section_id) VALUES ($1, $2)`
	for _, sectionID := range sectionIDs {
		if _, err := tx.ExecContext(ctx, link, out.ID, sectionID); err != nil {
			return nil, classify("link script section", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("commit create script", err)
	}

	sections, err := r.loadSections(ctx, out.ID)
	if err != nil {
		return nil, err
	}
	out.Sections = sections
	return out, nil
}

// FindByID fetches a script with its sections in display order.
func (r *ScriptPostgres) FindByID(ctx context.Context, _ scope.Scope, id string) (*model.InterviewScript, error) {
	const q = `SELECT ` + scriptCols + ` FROM interview_scripts WHERE id = $1`
	s, err := scanScript(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("interview script")
		}
		return nil, classify("find script", err)
	}
	sections, err := r.loadSections(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Sections = sections
	return s, nil
}

// List returns a filtered, ordered page of scripts with sections resolved.
func (r *ScriptPostgres) List(ctx context.Context, sc scope.Scope, lq repository.ListQuery) (*repository.PageResult[model.InterviewScript], error) {
	whereSQL, orderSQL, args, err := scriptSpec.build(scope.Scope{All: true}, lq)
	if err != nil {
		return nil, err
	}
	_ = sc // scripts are shared; scope is always All

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM interview_scripts"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count scripts", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := "SELECT " + scriptCols + " FROM interview_scripts" + whereSQL + orderSQL +
		" LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list scripts", err)
	}
	defer rows.Close()

	items := make([]model.InterviewScript, 0)
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, classify("scan script", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list scripts", err)
	}

	for i := range items {
		sections, err := r.loadSections(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Sections = sections
	}
	return &repository.PageResult[model.InterviewScript]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing script row. Section
// membership is managed through Create and the section endpoints.
func (r *ScriptPostgres) Update(ctx context.Context, s *model.InterviewScript) (*model.InterviewScript, error) {
	const q = `
		UPDATE interview_scripts
		SET title = $2, description = $3, script_type = $4, version = $5, is_active = $6,
			total_duration = $7, general_notes = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + scriptCols
	out, err := scanScript(r.db.QueryRowContext(ctx, q,
		s.ID, s.Title, s.Description, s.ScriptType, s.Version, s.IsActive,
		s.TotalDuration, s.GeneralNotes, s.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("interview script")
		}
		return nil, classify("update script", err)
	}
	sections, err := r.loadSections(ctx, out.ID)
	if err != nil {
		return nil, err
	}
	out.Sections = sections
	return out, nil
}

// Delete removes a script by id. Link rows cascade; shared sections survive.
func (r *ScriptPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM interview_scripts WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete script", err)
	}
	return nil
}

// loadSections resolves a script's sections in display order: order_index
// ascending, insertion order (link id) breaking ties.
func (r *ScriptPostgres) loadSections(ctx context.Context, scriptID string) ([]model.ScriptSection, error) {
	const q = `
		SELECT s.id, s.title, s.duration_seconds, s.content, s.order_index, s.key_notes
		FROM interview_script_sections l
		JOIN script_sections s ON s.id = l.section_id
		WHERE l.script_id = $1
		ORDER BY s.order_index, l.id`
	rows, err := r.db.QueryContext(ctx, q, scriptID)
	if err != nil {
		return nil, classify("load script sections", err)
	}
	defer rows.Close()

	sections := make([]model.ScriptSection, 0)
	for rows.Next() {
		var s model.ScriptSection
		if err := rows.Scan(&s.ID, &s.Title, &s.DurationSeconds, &s.Content, &s.OrderIndex, &s.KeyNotes); err != nil {
			return nil, classify("scan script section", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("load script sections", err)
	}
	return sections, nil
}

// SectionPostgres is a PostgreSQL implementation of repository.SectionRepository.
type SectionPostgres struct {
	db *sql.DB
}

// NewSectionPostgres creates a new SectionPostgres repository.
func NewSectionPostgres(db *sql.DB) *SectionPostgres {
	return &SectionPostgres{db: db}
}

var _ repository.SectionRepository = (*SectionPostgres)(nil)

var sectionSpec = listSpec{
	filterCols:  map[string]string{},
	sortCols:    map[string]string{"order": "order_index", "title": "title"},
	defaultSort: "order_index ASC",
}

const sectionCols = "id, title, duration_seconds, content, order_index, key_notes"

func scanSection(row interface{ Scan(...any) error }) (*model.ScriptSection, error) {
	var s model.ScriptSection
	if err := row.Scan(&s.ID, &s.Title, &s.DurationSeconds, &s.Content, &s.OrderIndex, &s.KeyNotes); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new section row and returns the stored record.
func (r *SectionPostgres) Create(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error) {
	const q = `
		INSERT INTO script_sections (id, title, duration_seconds, content, order_index, key_notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sectionCols
	out, err := scanSection(r.db.QueryRowContext(ctx, q,
		s.ID, s.Title, s.DurationSeconds, s.Content, s.OrderIndex, s.KeyNotes,
	))
	if err != nil {
		return nil, classify("insert section", err)
	}
	return out, nil
}

// FindByID fetches a section by id.
func (r *SectionPostgres) FindByID(ctx context.Context, id string) (*model.ScriptSection, error) {
	const q = `SELECT ` + sectionCols + ` FROM script_sections WHERE id = $1`
	s, err := scanSection(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("script section")
		}
		return nil, classify("find section", err)
	}
	return s, nil
}

// List returns a page of sections, order_index ascending by default.
func (r *SectionPostgres) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.ScriptSection], error) {
	whereSQL, orderSQL, args, err := sectionSpec.build(scope.Scope{All: true}, lq)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM script_sections"+whereSQL, args...).Scan(&total); err != nil {
		return nil, classify("count sections", err)
	}

	pageArgs := append(args, lq.Limit, lq.Offset)
	q := fmt.Sprintf("SELECT %s FROM script_sections%s%s LIMIT $%d OFFSET $%d",
		sectionCols, whereSQL, orderSQL, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, classify("list sections", err)
	}
	defer rows.Close()

	items := make([]model.ScriptSection, 0)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, classify("scan section", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list sections", err)
	}
	return &repository.PageResult[model.ScriptSection]{Items: items, Total: total}, nil
}

// Update rewrites the mutable columns of an existing section row.
func (r *SectionPostgres) Update(ctx context.Context, s *model.ScriptSection) (*model.ScriptSection, error) {
	const q = `
		UPDATE script_sections
		SET title = $2, duration_seconds = $3, content = $4, order_index = $5, key_notes = $6
		WHERE id = $1
		RETURNING ` + sectionCols
	out, err := scanSection(r.db.QueryRowContext(ctx, q,
		s.ID, s.Title, s.DurationSeconds, s.Content, s.OrderIndex, s.KeyNotes,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("script section")
		}
		return nil, classify("update section", err)
	}
	return out, nil
}

// Delete removes a section by id. Link rows cascade out of any scripts that
// referenced it.
func (r *SectionPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM script_sections WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return classify("delete section", err)
	}
	return nil
}
