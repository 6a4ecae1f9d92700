package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/klarnapay/internal/pkg/auth"
)

// AdminRequired admits requests whose bearer token matches the configured hash.
// An empty hash disables admin access.
func AdminRequired(hasher pkgAuth.TokenHasher, tokenHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || tokenHash == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err := hasher.Compare(tokenHash, token); err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
