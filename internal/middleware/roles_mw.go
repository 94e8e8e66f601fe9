package middleware

import (
	"log"
	"net/http"

	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware checks if the caller is an admin. The role is resolved
// against the store on every request, never read from the token, so role
// changes take effect without reissuing sessions. A session whose identity
// has no user record is simply not an admin.
func AdminMiddleware(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := authEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), email)
		if err != nil {
			log.Printf("Error resolving admin role for %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve role"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		c.Next()
	}
}

// ModeratorMiddleware checks if the caller is a moderator
func ModeratorMiddleware(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := authEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		isModerator, err := users.IsModerator(c.Request.Context(), email)
		if err != nil {
			log.Printf("Error resolving moderator role for %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve role"})
			return
		}
		if !isModerator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		c.Next()
	}
}

func authEmail(c *gin.Context) (string, bool) {
	emailVal, exists := c.Get(AuthEmailKey)
	if !exists {
		return "", false
	}
	email, ok := emailVal.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
