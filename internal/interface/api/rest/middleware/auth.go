package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-profile-api/internal/infrastructure/jwt"
)

const CtxSubject = "subject"

// AuthMiddleware requires a bearer token with write scope. It lets every request
// through when no signing secret is configured.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jwtService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if errors.Is(err, jwt.ErrInvalidScope) {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": err.Error()},
			)
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxSubject, claims.Subject)

		c.Next()
	}
}
