package httpapi

import (
	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// RequireAuthenticated answers 401 when the gate attached no identity.
func RequireAuthenticated(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.IdentityFromContext(c.Request.Context()); !ok {
			abortWithError(c, l, common.ErrorUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireRole answers 401 without an identity and 403 when the identity
// holds none of roles.
func RequireRole(l logging.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			abortWithError(c, l, common.ErrorUnauthorized)
			return
		}
		if !id.HasAnyAuthority(roles...) {
			abortWithError(c, l, common.ErrorForbidden)
			return
		}
		c.Next()
	}
}

// username returns the authenticated caller. Only valid behind
// RequireAuthenticated or RequireRole.
func username(c *gin.Context) string {
	id, _ := auth.IdentityFromContext(c.Request.Context())
	if id == nil {
		return ""
	}
	return id.Username
}
