package dto

import "github.com/craftsync/task-activity-api/internal/models"

// UserResponse is the reduced user shape returned on creation
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserCreatedResponse wraps a created user with a confirmation message
type UserCreatedResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UsersResponse is the user shape used in listings
type UsersResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AccessToken is the credential-exchange response
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserResponse converts a User model to UserResponse
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToUsersResponse converts a slice of users to their listing shape
func ToUsersResponse(users []models.User) []UsersResponse {
	result := make([]UsersResponse, len(users))
	for i, user := range users {
		result[i] = UsersResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
	}
	return result
}
