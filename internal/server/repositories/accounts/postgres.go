package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const selectAccount = `SELECT id, username, email, password_hash, role, otp, otp_expires_at, created_at
		 FROM accounts
		`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE username = $1`, username)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE email = $1`, email)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.OTP, &a.OTPExpiresAt, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Save(ctx context.Context, a *models.Account) (*models.Account, error) {
	if a.ID == "" {
		return r.insert(ctx, a)
	}
	return r.update(ctx, a)
}

func (r *PostgresRepository) insert(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (username, email, password_hash, role, otp, otp_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.Username, a.Email, a.PasswordHash, a.Role, a.OTP, a.OTPExpiresAt).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return nil, mapError(err)
	}

	return a, nil
}

func (r *PostgresRepository) update(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`UPDATE accounts
		 SET username = $2, email = $3, password_hash = $4, role = $5, otp = $6, otp_expires_at = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		a.ID, a.Username, a.Email, a.PasswordHash, a.Role, a.OTP, a.OTPExpiresAt)
	if err != nil {
		return nil, mapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return a, nil
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}
