package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SelfScopeMiddleware requires the email query parameter to match the
// identity in the verified session, so one user cannot read another's
// role flags or payment history by substituting the parameter.
func SelfScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := authEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		if c.Query("email") != email {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}

		c.Next()
	}
}
