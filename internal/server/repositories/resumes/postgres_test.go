package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resumeColumns = []string{"id", "title", "file_name", "file_type", "storage_key", "size", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*title,\s*file_name,\s*file_type,\s*storage_key,\s*size,\s*created_at\s+FROM\s+resumes\s+ORDER\s+BY\s+id\s*$`).
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow(int64(1), "cv", "cv.pdf", "application/pdf", "resumes/2025/1/1/x", int64(1024), now).
			AddRow(int64(2), "notes", "", "", "", int64(0), now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].HasFile())
	assert.False(t, got[1].HasFile())
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+resumes`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+resumes\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow(int64(5), "cv", "cv.pdf", "application/pdf", "k", int64(10), time.Now()))
	mock.ExpectQuery(q).
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", got.FileName)

	_, err = repo.Get(context.Background(), 6)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+resumes\s*\(title,\s*file_name,\s*file_type,\s*storage_key,\s*size\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`).
		WithArgs("cv", "cv.pdf", "application/pdf", "key", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), created))

	got, err := repo.Create(context.Background(), &models.Resume{
		Title: "cv", FileName: "cv.pdf", FileType: "application/pdf", StorageKey: "key", Size: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
	require.NoError(t, mock.ExpectationsWereMet())
}
