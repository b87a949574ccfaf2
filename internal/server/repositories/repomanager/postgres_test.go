package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/resumes"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/students"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnPostgresRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager()

	assert.IsType(t, &accounts.PostgresRepository{}, m.Accounts(db))
	assert.IsType(t, &students.PostgresRepository{}, m.Students(db))
	assert.IsType(t, &resumes.PostgresRepository{}, m.Resumes(db))
}

func TestMemoryManager_SharesInstances(t *testing.T) {
	var m RepositoryManager = NewMemoryRepositoryManager()

	assert.Same(t, m.Accounts(nil), m.Accounts(nil))
	assert.Same(t, m.Students(nil), m.Students(nil))
	assert.Same(t, m.Resumes(nil), m.Resumes(nil))
	assert.NoError(t, m.RunMigrations(context.Background(), nil))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.EqualError(t, err, "migrate: boom")
}
