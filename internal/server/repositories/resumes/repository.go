// Package resumes persists resume metadata. File content is kept in blob
// storage and referenced by StorageKey.
package resumes

import (
	"context"

	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Resume, error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*models.Resume, error)
	Create(ctx context.Context, r *models.Resume) (*models.Resume, error)
}
