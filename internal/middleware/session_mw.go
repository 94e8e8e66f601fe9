package middleware

import (
	"net/http"

	"nexify_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthEmailKey = "authEmail"
	AuthNameKey  = "authName"

	// SessionCookieName is the cookie carrying the signed session token
	SessionCookieName = "token"
)

// SessionMiddleware verifies the signed session cookie and exposes the
// embedded identity claim to downstream handlers. It performs no writes:
// a rejected request reaches neither the store nor the payment provider.
func SessionMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access"})
			return
		}

		c.Set(AuthEmailKey, claims.Email)
		c.Set(AuthNameKey, claims.Name)

		c.Next()
	}
}
