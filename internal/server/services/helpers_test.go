package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingNotifier remembers the last code per email.
type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (n *recordingNotifier) SendOTP(_ context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	if n.codes == nil {
		n.codes = make(map[string]string)
	}
	n.codes[email] = code
	return nil
}

func (n *recordingNotifier) code(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

// barrierNotifier holds every caller until n of them are sending at once.
type barrierNotifier struct {
	recordingNotifier
	arrived sync.WaitGroup
	mu      sync.Mutex
	sent    int
}

func newBarrierNotifier(n int) *barrierNotifier {
	b := &barrierNotifier{}
	b.arrived.Add(n)
	return b
}

func (b *barrierNotifier) SendOTP(ctx context.Context, email, code string) error {
	b.mu.Lock()
	b.sent++
	b.mu.Unlock()

	b.arrived.Done()
	b.arrived.Wait()
	return b.recordingNotifier.SendOTP(ctx, email, code)
}

type authFixture struct {
	svc      *AuthService
	clock    *clock
	codec    *auth.TokenCodec
	notifier *recordingNotifier
	rm       *repomanager.MemoryRepositoryManager
}

func newAuthFixture() *authFixture {
	c := newClock()
	rm := repomanager.NewMemoryRepositoryManager()
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour, auth.WithClock(c.Now))
	n := &recordingNotifier{}

	svc := NewAuthService(dbx.NoTx{}, rm, codec, auth.NewBcryptHasher(bcrypt.MinCost), n, 10*time.Minute, logging.Nop{})
	svc.now = c.Now

	return &authFixture{svc: svc, clock: c, codec: codec, notifier: n, rm: rm}
}

// brokenAccounts fails every call with err.
type brokenAccounts struct{ err error }

func (b brokenAccounts) FindByUsername(context.Context, string) (*models.Account, error) {
	return nil, b.err
}
func (b brokenAccounts) FindByEmail(context.Context, string) (*models.Account, error) {
	return nil, b.err
}
func (b brokenAccounts) Save(context.Context, *models.Account) (*models.Account, error) {
	return nil, b.err
}

// brokenAccountsManager serves failing account repositories and the
// in-memory ones otherwise.
type brokenAccountsManager struct {
	*repomanager.MemoryRepositoryManager
}

func (brokenAccountsManager) Accounts(dbx.DBTX) accounts.Repository {
	return brokenAccounts{err: errors.New("db down")}
}
