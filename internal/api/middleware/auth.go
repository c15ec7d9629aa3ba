package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

// identityKey is the Gin context key holding the verified identity.
const identityKey = "identity"

// Auth returns a middleware that verifies the bearer token against the
// external identity service and stores the resolved identity in the
// request context. Requests without a valid token are rejected with 401.
func Auth(verifier *provider.AuthVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
			})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		ctx := logger.SetUserID(c.Request.Context(), identity.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the verified identity for the request. The
// second return is false when the auth middleware did not run.
func CurrentIdentity(c *gin.Context) (*provider.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*provider.Identity)
	return identity, ok
}
