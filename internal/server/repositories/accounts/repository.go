// Package accounts stores identity records: username, email, password hash,
// role and pending signup codes.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

// Repository is the credential store used by the auth flows.
//
// Lookups return common.ErrorNotFound when nothing matches. Save inserts
// when the account has no ID yet (assigning one) and updates by ID
// otherwise; duplicate usernames or emails yield common.ErrorAlreadyExists.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
}
