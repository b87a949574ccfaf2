package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Resume, error) {
	query :=
		`SELECT id, title, file_name, file_type, storage_key, size, created_at FROM resumes
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Resume, 0)
	for rows.Next() {
		var m models.Resume
		if err := rows.Scan(&m.ID, &m.Title, &m.FileName, &m.FileType, &m.StorageKey, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Resume, error) {
	query :=
		`SELECT id, title, file_name, file_type, storage_key, size, created_at FROM resumes
		 WHERE id = $1
		 `

	m := &models.Resume{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Title, &m.FileName, &m.FileType, &m.StorageKey, &m.Size, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Resume) (*models.Resume, error) {
	query :=
		`INSERT INTO resumes (title, file_name, file_type, storage_key, size)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, m.Title, m.FileName, m.FileType, m.StorageKey, m.Size).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}
