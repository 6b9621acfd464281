package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annotate/utils"
)

// UserIDKey The context key the authenticated user id is stored under.
const UserIDKey = "user_id"

// JwtAuthMiddleware Reject requests without a valid token and attach the
// authenticated user id to the context.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := utils.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}
