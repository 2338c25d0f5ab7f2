package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/dto"
	apierrors "github.com/craftsync/task-activity-api/internal/errors"
	"github.com/craftsync/task-activity-api/internal/services"
)

// AuthHandler exchanges credentials for bearer tokens.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token authenticates form credentials and issues an access token. The
// username form field carries the email address.
func (h *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		apierrors.BadRequest(c, "Incorrect username or password")
		return
	}

	user, err := h.authService.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.BadRequest(c, "Incorrect username or password")
			return
		}
		zap.L().Error("authentication failed", zap.String("username", username), zap.Error(err))
		apierrors.InternalError(c, "An error occurred during authentication")
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		apierrors.InternalError(c, "An error occurred during authentication")
		return
	}

	c.JSON(http.StatusCreated, dto.AccessToken{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
