package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"file-manager-api/internal/application/ports"
)

const (
	// HeaderToken carries the opaque session token.
	HeaderToken = "X-Token"

	CtxUserID = "userID"
)

// XTokenAuth resolves the session token and stores the owning user id
// hex in the request context. Missing, unknown and expired tokens are
// all a plain 401.
func XTokenAuth(auth ports.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderToken)
		if token == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Unauthorized"},
			)
			return
		}

		userID, err := auth.Resolve(c.Request.Context(), token)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Unauthorized"},
			)
			return
		}

		c.Set(CtxUserID, userID)

		c.Next()
	}
}
