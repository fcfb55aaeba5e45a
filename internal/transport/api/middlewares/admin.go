package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type RoleGetter interface {
	GetRole(ctx context.Context, id int64) (domain.RoleType, error)
}

// AdminRequired gates a route group to admin accounts. Must run after
// AuthRequired, otherwise every request is rejected.
func AdminRequired(roles RoleGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exist := c.Get(CurrentAccountIDKey)
		if !exist {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token, authorization denied"})
			return
		}
		id, ok := raw.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token, authorization denied"})
			return
		}

		role, err := roles.GetRole(c, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
				return
			}
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
			return
		}
		if role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
