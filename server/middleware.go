package bookstoreserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userports "github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// identityKey is the gin context key the auth middleware stores the verified
// identity under.
const identityKey = "auth.identity"

// bearerToken extracts the credential from the Authorization header,
// falling back to the legacy x-auth-token header older clients still send.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return header
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// RequireAuth verifies the request token and stores the resolved identity
// for downstream handlers. Requests without a token are rejected with 401.
func RequireAuth(verifier userports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.String(http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}
		identity, err := verifier.Verify(token)
		if err != nil {
			c.String(http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin gates a route to identities carrying the admin role. It must
// run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || !identity.IsAdmin {
			c.String(http.StatusForbidden, "Access denied.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// identityFrom returns the identity stored by RequireAuth.
func identityFrom(c *gin.Context) (userports.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return userports.Identity{}, false
	}
	identity, ok := value.(userports.Identity)
	return identity, ok
}
