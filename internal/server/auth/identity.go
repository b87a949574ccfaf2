package auth

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
)

// Identity is the principal attached to an authenticated request.
// It lives only as long as the request context.
type Identity struct {
	Username    string
	Authorities []string
}

// IdentityFromAccount maps a stored account to a request identity.
func IdentityFromAccount(a *models.Account) *Identity {
	var authorities []string
	if a.Role != "" {
		authorities = []string{a.Role}
	}
	return &Identity{Username: a.Username, Authorities: authorities}
}

// HasAnyAuthority reports whether the identity holds at least one of roles.
func (i *Identity) HasAnyAuthority(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(i.Authorities, r) {
			return true
		}
	}
	return false
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by WithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
