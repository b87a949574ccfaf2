package students

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

// MemoryRepository is the process-local Repository used without a database.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]models.Student
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]models.Student)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Student, 0, len(r.byID))
	for _, s := range r.byID {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) GetByUserID(_ context.Context, userID string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Student
	for _, s := range r.byID {
		if s.UserID != nil && *s.UserID == userID && (found == nil || s.ID < found.ID) {
			s := s
			found = &s
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *MemoryRepository) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	s.ID = r.nextID
	r.byID[s.ID] = detach(*s)
	return s, nil
}

func (r *MemoryRepository) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[s.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.Name, cur.Branch, cur.Percentage = s.Name, s.Branch, s.Percentage
	r.byID[s.ID] = cur
	return &cur, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) SetResume(_ context.Context, studentID, resumeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[studentID]
	if !ok {
		return common.ErrorNotFound
	}
	s.ResumeID = &resumeID
	r.byID[studentID] = s
	return nil
}

// detach copies the pointer fields so stored values never alias caller memory.
func detach(s models.Student) models.Student {
	if s.ResumeID != nil {
		v := *s.ResumeID
		s.ResumeID = &v
	}
	if s.UserID != nil {
		v := *s.UserID
		s.UserID = &v
	}
	return s
}
