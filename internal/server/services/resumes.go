package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumekeeper/internal/server/storage"
)

// Upload is a resume file received from a client.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ResumeService manages resume metadata and the stored files.
type ResumeService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	logger      logging.Logger
	now         func() time.Time
}

func NewResumeService(tx dbx.Transactor, m repomanager.RepositoryManager, blobs storage.BlobStore, l logging.Logger) *ResumeService {
	return &ResumeService{
		tx:          tx,
		repomanager: m,
		blobs:       blobs,
		logger:      l.With("module", "resume_service"),
		now:         time.Now,
	}
}

func (s *ResumeService) List(ctx context.Context) ([]models.Resume, error) {
	list, err := s.repomanager.Resumes(s.tx.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return list, nil
}

func (s *ResumeService) Get(ctx context.Context, id int64) (*models.Resume, error) {
	r, err := s.repomanager.Resumes(s.tx.Conn()).Get(ctx, id)
	if err != nil {
		return nil, resumeError(err)
	}
	return r, nil
}

// AddToStudent stores metadata-only resume r and links it to the student.
func (s *ResumeService) AddToStudent(ctx context.Context, studentID int64, r *models.Resume) (*models.Resume, error) {
	if r.Title == "" {
		return nil, fmt.Errorf("%w: resume title is required", common.ErrorValidation)
	}
	r.StorageKey = ""

	if err := s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.createAndLink(ctx, tx, studentID, r)
	}); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "resume linked", "resume_id", r.ID, "student_id", studentID)
	return r, nil
}

// Upload stores the file under a fresh key, then records the resume and
// links it to the student in one transaction. If the transaction fails the
// blob is removed again.
func (s *ResumeService) Upload(ctx context.Context, studentID int64, title string, u Upload) (*models.Resume, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: resume title is required", common.ErrorValidation)
	}
	if _, err := s.repomanager.Students(s.tx.Conn()).Get(ctx, studentID); err != nil {
		return nil, studentError(err)
	}

	key := storage.NewKey(s.now())
	if err := s.blobs.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	r := &models.Resume{
		Title:      title,
		FileName:   u.FileName,
		FileType:   u.ContentType,
		StorageKey: key,
		Size:       u.Size,
	}
	err := s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.createAndLink(ctx, tx, studentID, r)
	})
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Error(ctx, "orphaned resume file", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info(ctx, "resume uploaded", "resume_id", r.ID, "student_id", studentID, "size", r.Size)
	return r, nil
}

func (s *ResumeService) createAndLink(ctx context.Context, tx dbx.DBTX, studentID int64, r *models.Resume) error {
	studentsRepo := s.repomanager.Students(tx)
	if _, err := studentsRepo.Get(ctx, studentID); err != nil {
		return studentError(err)
	}
	if _, err := s.repomanager.Resumes(tx).Create(ctx, r); err != nil {
		return fmt.Errorf("create resume: %w", err)
	}
	if err := studentsRepo.SetResume(ctx, studentID, r.ID); err != nil {
		return studentError(err)
	}
	return nil
}

// DownloadForUser opens the file of the resume linked to the student owned
// by username. The caller closes the returned reader.
func (s *ResumeService) DownloadForUser(ctx context.Context, username string) (*models.Resume, io.ReadCloser, error) {
	conn := s.tx.Conn()

	acc, err := s.repomanager.Accounts(conn).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}

	st, err := s.repomanager.Students(conn).GetByUserID(ctx, acc.ID)
	if err != nil {
		return nil, nil, studentError(err)
	}
	if st.ResumeID == nil {
		return nil, nil, common.ErrResumeNotFound
	}

	r, err := s.repomanager.Resumes(conn).Get(ctx, *st.ResumeID)
	if err != nil {
		return nil, nil, resumeError(err)
	}
	if !r.HasFile() {
		return nil, nil, common.ErrResumeNotFound
	}

	body, err := s.blobs.Get(ctx, r.StorageKey)
	if err != nil {
		return nil, nil, resumeError(err)
	}
	return r, body, nil
}

func resumeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrResumeNotFound
	}
	return fmt.Errorf("resume store: %w", err)
}
