package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPostgres_StorageKeysByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	rows := sqlmock.NewRows([]string{"storage_path"}).
		AddRow("documents/client-1/a.pdf").
		AddRow("documents/client-1/b.pdf")
	mock.ExpectQuery("SELECT storage_path FROM documents WHERE client_id").
		WithArgs("client-1").
		WillReturnRows(rows)

	keys, err := repo.StorageKeysByClient(context.Background(), "client-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"documents/client-1/a.pdf", "documents/client-1/b.pdf"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
