package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praise456/cryptovault-backend/internal/service/tokens"
)

// CurrentAccountIDKey is the gin context key holding the authenticated
// account id (int64).
const CurrentAccountIDKey = "currentAccountID"

// extractToken pulls the JWT from the Authorization header (with or without
// the Bearer prefix) or from the x-auth-token header.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// AuthRequired rejects requests without a valid auth token and stores the
// account id under CurrentAccountIDKey for downstream handlers.
func AuthRequired(jwtSecretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token, authorization denied"})
			return
		}

		claims, err := tokens.ValidateAccountJWT(tokenString, tokens.PurposeAuth, jwtSecretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
			return
		}

		c.Set(CurrentAccountIDKey, claims.ID)
		c.Next()
	}
}

// NonAuthRequired rejects requests carrying a valid auth token. Guards the
// register/login endpoints against already authenticated clients.
func NonAuthRequired(jwtSecretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if _, err := tokens.ValidateAccountJWT(tokenString, tokens.PurposeAuth, jwtSecretKey); err == nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "already authenticated"})
				return
			}
		}
		c.Next()
	}
}
