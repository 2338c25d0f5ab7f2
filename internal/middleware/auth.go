package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/craftsync/task-activity-api/internal/constants"
	apierrors "github.com/craftsync/task-activity-api/internal/errors"
	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/services"
)

// RequireAuth validates the bearer token and loads the authenticated user
// into the request context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.ResolveToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
