package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/resumes"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/students"
)

// MemoryRepositoryManager hands out one shared in-memory repository per
// kind; the DB handle is ignored. Used when no DSN is configured.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	students *students.MemoryRepository
	resumes  *resumes.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		students: students.NewMemoryRepository(),
		resumes:  resumes.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository { return m.accounts }

func (m *MemoryRepositoryManager) Students(dbx.DBTX) students.Repository { return m.students }

func (m *MemoryRepositoryManager) Resumes(dbx.DBTX) resumes.Repository { return m.resumes }
