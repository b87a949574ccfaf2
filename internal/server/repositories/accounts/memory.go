package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. Stored values are
// copied on the way in and out, so callers never share state with it.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.Account
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Account), now: time.Now}
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Username == username {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.Email != nil && *a.Email == email {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Save(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID != "" {
		if _, ok := r.byID[a.ID]; !ok {
			return nil, common.ErrorNotFound
		}
	}

	for id, other := range r.byID {
		if id == a.ID {
			continue
		}
		if other.Username == a.Username {
			return nil, common.ErrorAlreadyExists
		}
		if a.Email != nil && other.Email != nil && *a.Email == *other.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
		a.CreatedAt = r.now()
	}
	r.byID[a.ID] = clone(a)

	return a, nil
}

func clone(a *models.Account) *models.Account {
	c := *a
	c.Email = clonePtr(a.Email)
	c.PasswordHash = clonePtr(a.PasswordHash)
	c.OTP = clonePtr(a.OTP)
	c.OTPExpiresAt = clonePtr(a.OTPExpiresAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
