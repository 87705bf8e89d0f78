package middleware

import (
	"net/http"
	"strings"

	"gescom/internal/models"
	"gescom/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// RequireAuth validates the bearer token of every protected call. The
// blacklist check inside ValidateToken always wins over signature validity.
func RequireAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or revoked token"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// Session returns the verified identity stored by RequireAuth.
func Session(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}
