package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/students"
)

// StudentService manages student records. Every authenticated caller may
// read and modify any student; new records are linked to their creator.
type StudentService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewStudentService(tx dbx.Transactor, m repomanager.RepositoryManager, l logging.Logger) *StudentService {
	return &StudentService{tx: tx, repomanager: m, logger: l.With("module", "student_service")}
}

func (s *StudentService) repo() students.Repository {
	return s.repomanager.Students(s.tx.Conn())
}

func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	list, err := s.repo().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return list, nil
}

func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	st, err := s.repo().Get(ctx, id)
	if err != nil {
		return nil, studentError(err)
	}
	return st, nil
}

// Create stores st owned by the account named owner.
func (s *StudentService) Create(ctx context.Context, owner string, st *models.Student) (*models.Student, error) {
	if err := validateStudent(st); err != nil {
		return nil, err
	}

	acc, err := s.repomanager.Accounts(s.tx.Conn()).FindByUsername(ctx, owner)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	st.ID = 0
	st.ResumeID = nil
	st.UserID = &acc.ID

	created, err := s.repo().Create(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info(ctx, "student created", "id", created.ID, "owner", owner)
	return created, nil
}

// Update replaces name, branch and percentage of student id.
func (s *StudentService) Update(ctx context.Context, id int64, st *models.Student) (*models.Student, error) {
	if err := validateStudent(st); err != nil {
		return nil, err
	}

	st.ID = id
	updated, err := s.repo().Update(ctx, st)
	if err != nil {
		return nil, studentError(err)
	}
	return updated, nil
}

func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo().Delete(ctx, id); err != nil {
		return studentError(err)
	}
	s.logger.Info(ctx, "student deleted", "id", id)
	return nil
}

func validateStudent(st *models.Student) error {
	if st.Name == "" {
		return fmt.Errorf("%w: student name is required", common.ErrorValidation)
	}
	if st.Percentage < 0 || st.Percentage > 100 {
		return fmt.Errorf("%w: percentage must be between 0 and 100", common.ErrorValidation)
	}
	return nil
}

func studentError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrStudentNotFound
	}
	return fmt.Errorf("student store: %w", err)
}
