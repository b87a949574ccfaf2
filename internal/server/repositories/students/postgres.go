package students

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

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (*models.Student, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Branch, &s.Percentage, &s.ResumeID, &s.UserID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Student, error) {
	query :=
		`SELECT id, name, branch, percentage, resume_id, user_id FROM students
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Student, error) {
	query :=
		`SELECT id, name, branch, percentage, resume_id, user_id FROM students
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	query :=
		`SELECT id, name, branch, percentage, resume_id, user_id FROM students
		 WHERE user_id = $1
		 ORDER BY id
		 LIMIT 1
		 `
	return r.getOne(ctx, query, userID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Student) (*models.Student, error) {
	query :=
		`INSERT INTO students (name, branch, percentage, resume_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Branch, s.Percentage, s.ResumeID, s.UserID).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Student) (*models.Student, error) {
	query :=
		`UPDATE students SET name = $2, branch = $3, percentage = $4
		 WHERE id = $1
		 RETURNING id, name, branch, percentage, resume_id, user_id
		 `

	updated, err := scanStudent(r.db.QueryRowContext(ctx, query, s.ID, s.Name, s.Branch, s.Percentage))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, `DELETE FROM students WHERE id = $1`, id)
}

func (r *PostgresRepository) SetResume(ctx context.Context, studentID, resumeID int64) error {
	return r.execOne(ctx, `UPDATE students SET resume_id = $2 WHERE id = $1`, studentID, resumeID)
}

// execOne runs a statement expected to touch exactly one row.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
