package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the signed session token.
const SessionCookie = "auth-token"

const identityKey = "identity"

type identityCtxKey struct{}

// TokenVerifier decodes a session token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// AuthMiddleware verifies the session token from the auth-token cookie, or from
// an Authorization: Bearer header, and stores the identity for the request.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRoles is the edge check: it rejects callers whose role the policy
// does not allow on the request path. It must run after AuthMiddleware.
func RequireRoles(policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if !policy.Allow(c.Request.URL.Path, identity.Role) {
			RespondWithError(c, http.StatusForbidden, "Forbidden: Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SetIdentity stores the identity on both the gin context and the request context.
func SetIdentity(c *gin.Context, identity models.Identity) {
	c.Set(identityKey, identity)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
}

func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(models.Identity)
	return identity, ok
}
