package accounts

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	created := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	r.now = func() time.Time { return created }

	a, err := r.Save(ctx, &models.Account{Username: "alice", Email: strPtr("alice@example.com"), Role: common.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	assert.Equal(t, created, a.CreatedAt)

	byName, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byName.ID)

	byEmail, err := r.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	_, err = r.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a, err := r.Save(ctx, &models.Account{Username: "alice", Role: common.RoleUser, OTP: strPtr("111111")})
	require.NoError(t, err)

	a.OTP = nil
	a.PasswordHash = strPtr("hash")
	_, err = r.Save(ctx, a)
	require.NoError(t, err)

	got, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got.OTP)
	assert.Equal(t, models.StateActive, got.State())

	_, err = r.Save(ctx, &models.Account{ID: "missing", Username: "zed"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Save(ctx, &models.Account{Username: "alice", Email: strPtr("a@example.com")})
	require.NoError(t, err)

	_, err = r.Save(ctx, &models.Account{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = r.Save(ctx, &models.Account{Username: "other", Email: strPtr("a@example.com")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	// legacy accounts without email never collide on email
	_, err = r.Save(ctx, &models.Account{Username: "legacy1"})
	require.NoError(t, err)
	_, err = r.Save(ctx, &models.Account{Username: "legacy2"})
	require.NoError(t, err)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Save(ctx, &models.Account{Username: "alice", OTP: strPtr("123456")})
	require.NoError(t, err)

	got, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	*got.OTP = "999999"
	got.Username = "mutated"

	again, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "123456", *again.OTP)
}

func TestMemoryRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Save(ctx, &models.Account{Username: fmt.Sprintf("user%d", i%10)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.byID, 10)
}
