package middleware

import (
	"net/http"
	"strings"

	"warbler/internal/auth"
	"warbler/internal/authz"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into an authenticated session
// on the request context. Requests without a valid, non-blacklisted
// token are rejected before any handler runs.
func AuthMiddleware(session auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 检查 token 是否在黑名单
		in, _ := session.InBlackList(token)
		if in {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
			c.Abort()
			return
		}

		authz.WithSession(c, authz.Session{UserID: claims.UserID, Authenticated: true})
		c.Set("device", claims.Device)
		c.Next()
	}
}
