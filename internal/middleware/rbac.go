package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/models"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
	"github.com/examhub-lk/examhub-api/pkg/response"
)

// RequireRoles allows the request through only when the JWT claims carry one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
