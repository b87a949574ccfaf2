package resumes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

// MemoryRepository is the process-local Repository used without a database.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]models.Resume
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]models.Resume)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Resume, 0, len(r.byID))
	for _, m := range r.byID {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) Create(_ context.Context, m *models.Resume) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.byID[m.ID] = *m
	return m, nil
}
