package httpapi

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// AccountFinder resolves the subject of a token to a stored account.
type AccountFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Gate attaches an auth.Identity to the request when it carries a valid
// bearer token for an existing account. It never rejects a request itself:
// routes decide with RequireAuthenticated and RequireRole.
func Gate(codec *auth.TokenCodec, accounts AccountFinder, l logging.Logger) gin.HandlerFunc {
	l = l.With("module", "gate")
	return func(c *gin.Context) {
		if id := authenticate(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName), codec, accounts, l); id != nil {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

func authenticate(ctx context.Context, header string, codec *auth.TokenCodec, accounts AccountFinder, l logging.Logger) *auth.Identity {
	if _, ok := auth.IdentityFromContext(ctx); ok {
		return nil
	}

	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return nil
	}

	username, err := codec.ExtractSubject(token)
	if err != nil {
		l.Debug(ctx, "unreadable bearer token", "error", err)
		return nil
	}

	acc, err := accounts.FindByUsername(ctx, username)
	if err != nil {
		l.Warn(ctx, "token subject not resolved", "username", username, "error", err)
		return nil
	}

	claims, err := codec.Verify(token)
	if err != nil {
		l.Warn(ctx, "token rejected", "username", username, "error", err)
		return nil
	}
	if claims.Subject != acc.Username {
		l.Warn(ctx, "token subject mismatch", "username", username)
		return nil
	}

	return auth.IdentityFromAccount(acc)
}
