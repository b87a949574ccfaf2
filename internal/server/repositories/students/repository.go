// Package students persists student records and their link to a resume and
// an owning account.
package students

import (
	"context"

	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

// Repository returns common.ErrorNotFound whenever the addressed student
// does not exist.
type Repository interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	Create(ctx context.Context, s *models.Student) (*models.Student, error)
	// Update rewrites name, branch and percentage.
	Update(ctx context.Context, s *models.Student) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	SetResume(ctx context.Context, studentID, resumeID int64) error
}
