package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/dto"
	apierrors "github.com/craftsync/task-activity-api/internal/errors"
	"github.com/craftsync/task-activity-api/internal/services"
	"github.com/craftsync/task-activity-api/internal/utils"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username  string  `json:"username" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required,min=8"`
		Company   string  `json:"company"`
		IsAdmin   bool    `json:"is_admin"`
		PictureID *uint64 `json:"picture_id"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Company:   req.Company,
		IsAdmin:   req.IsAdmin,
		PictureID: req.PictureID,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			apierrors.BadRequest(c, "Email is already registered")
			return
		}
		zap.L().Error("user creation failed", zap.String("email", req.Email), zap.Error(err))
		apierrors.InternalError(c, "An error occurred while creating the user")
		return
	}

	c.JSON(http.StatusCreated, dto.UserCreatedResponse{
		Message: "User created successfully",
		User:    dto.ToUserResponse(*user),
	})
}

// ListUsers returns users with pagination
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, err := h.userService.List(params.Skip, params.Limit)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		apierrors.InternalError(c, "An error occurred while fetching the users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUsersResponse(users))
}

// GetUser returns one user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		zap.L().Error("failed to fetch user", zap.Uint64("user_id", userID), zap.Error(err))
		apierrors.InternalError(c, "An error occurred while fetching the user")
		return
	}

	c.JSON(http.StatusOK, dto.UsersResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
