package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

var taskColumnsT = []string{
	"id", "broker_id", "client_id", "application_id", "title", "description",
	"due_date", "priority", "status", "completed_at", "created_at", "updated_at",
}

func TestTaskPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	sc := scope.Scope{BrokerID: "broker-1"}

	t.Run("default order is due date ascending", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE broker_id = \$1`).
			WithArgs("broker-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(taskColumnsT).
			AddRow("task-1", "broker-1", nil, nil, "Soonest", "", now, "medium", "pending", nil, now, now).
			AddRow("task-2", "broker-1", nil, nil, "Later", "", now.Add(time.Hour), "medium", "pending", nil, now, now)
		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE broker_id = \$1 ORDER BY due_date ASC, id LIMIT \$2 OFFSET \$3`).
			WithArgs("broker-1", 20, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, sc, repository.ListQuery{Limit: 20})
		require.NoError(t, err)
		require.Len(t, res.Items, 2)
		assert.True(t, !res.Items[0].DueDate.After(res.Items[1].DueDate))
	})

	t.Run("completed filter with zero matches is empty, not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks`).
			WithArgs("broker-1", "completed").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM tasks`).
			WithArgs("broker-1", "completed", 20, 0).
			WillReturnRows(sqlmock.NewRows(taskColumnsT))

		res, err := repo.List(ctx, sc, repository.ListQuery{
			Filters: map[string]string{"status": "completed"},
			Limit:   20,
		})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("explicit descending sort", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE broker_id = \$1`).
			WithArgs("broker-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE broker_id = \$1 ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
			WithArgs("broker-1", 20, 0).
			WillReturnRows(sqlmock.NewRows(taskColumnsT))

		_, err := repo.List(ctx, sc, repository.ListQuery{
			Sort:  []repository.SortKey{{Field: "created_at", Desc: true}},
			Limit: 20,
		})
		assert.NoError(t, err)
	})
}

func TestTaskPostgres_Create_CompletedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)
	now := time.Now().UTC()

	task := &model.Task{
		ID:        "task-1",
		BrokerID:  "broker-1",
		Title:     "Collect payslips",
		DueDate:   now.Add(24 * time.Hour),
		Priority:  model.TaskHigh,
		Status:    model.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	rows := sqlmock.NewRows(taskColumnsT).
		AddRow(task.ID, task.BrokerID, nil, nil, task.Title, "", task.DueDate,
			"high", "pending", nil, now, now)
	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(task.ID, task.BrokerID, nil, nil, task.Title, "", task.DueDate,
			task.Priority, task.Status, nil, now, now).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), task)
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID_ScopesThroughClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	docColumns := []string{
		"id", "client_id", "application_id", "title", "document_type", "storage_path",
		"file_size", "content_type", "status", "notes", "uploaded_at", "broker_id",
	}

	t.Run("owned through client", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow("doc-1", "client-1", nil, "Payslip", "income", "documents/doc-1.pdf",
				1024, "application/pdf", "pending", "", now, "broker-1")
		mock.ExpectQuery(`SELECT (.+) FROM documents d\s+JOIN clients c ON c.id = d.client_id\s+WHERE d.id = \$1`).
			WithArgs("doc-1").
			WillReturnRows(rows)

		got, err := repo.FindByID(ctx, scope.Scope{BrokerID: "broker-1"}, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "doc-1", got.ID)
	})

	t.Run("client belongs to another broker", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow("doc-1", "client-1", nil, "Payslip", "income", "documents/doc-1.pdf",
				1024, "application/pdf", "pending", "", now, "broker-2")
		mock.ExpectQuery(`SELECT (.+) FROM documents d`).
			WithArgs("doc-1").
			WillReturnRows(rows)

		_, err := repo.FindByID(ctx, scope.Scope{BrokerID: "broker-1"}, "doc-1")
		assert.True(t, apperr.IsAuthorization(err))
	})
}

func TestScriptPostgres_SectionsInDisplayOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewScriptPostgres(db)
	now := time.Now().UTC()

	scriptColumns := []string{
		"id", "title", "description", "script_type", "version", "is_active",
		"total_duration", "general_notes", "created_at", "updated_at",
	}
	mock.ExpectQuery(`SELECT (.+) FROM interview_scripts WHERE id = \$1`).
		WithArgs("script-1").
		WillReturnRows(sqlmock.NewRows(scriptColumns).
			AddRow("script-1", "First call", "", "initial_call", "1.0", true, 900, "", now, now))

	sectionColumns := []string{"id", "title", "duration_seconds", "content", "order_index", "key_notes"}
	mock.ExpectQuery(`SELECT (.+) FROM interview_script_sections l\s+JOIN script_sections s ON s.id = l.section_id\s+WHERE l.script_id = \$1\s+ORDER BY s.order_index, l.id`).
		WithArgs("script-1").
		WillReturnRows(sqlmock.NewRows(sectionColumns).
			AddRow("sec-1", "Intro", 120, "Hello...", 1, "").
			AddRow("sec-2", "Income questions", 300, "Ask about...", 2, ""))

	got, err := repo.FindByID(context.Background(), scope.Scope{All: true}, "script-1")
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Intro", got.Sections[0].Title)
	assert.LessOrEqual(t, got.Sections[0].OrderIndex, got.Sections[1].OrderIndex)
}
