// Package repomanager vends repository implementations bound to a DB handle,
// so services can run the same repositories against a connection or a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/resumes"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/students"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Students(db dbx.DBTX) students.Repository
	Resumes(db dbx.DBTX) resumes.Repository
}
