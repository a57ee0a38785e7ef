// middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicbook/models"
	"clinicbook/services/user"
	"clinicbook/utils"
)

// IdentityKey is the gin context key under which the resolved caller is stored.
const IdentityKey = "identity"

// JWTAuthMiddleware validates the bearer token and stores the caller's
// resolved identity in the request context.
func JWTAuthMiddleware(users user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := users.ResolveIdentity(c.Request.Context(), tokenString)
		if err != nil {
			// A user-store failure must not masquerade as a bad token.
			if errors.Is(err, user.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			utils.GetLogger().Error("Failed to resolve identity", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
			return
		}

		c.Set(IdentityKey, *identity)
		c.Next()
	}
}

// CallerIdentity fetches the identity stored by JWTAuthMiddleware.
func CallerIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}
