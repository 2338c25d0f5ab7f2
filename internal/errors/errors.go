package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body convention: a single detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return e.Detail
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, ErrorResponse{Detail: detail})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, detail)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Could not validate credentials"
	}
	c.Header("WWW-Authenticate", "Bearer")
	RespondWithError(c, http.StatusUnauthorized, detail)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, detail string) {
	if detail == "" {
		detail = "You do not have access to this resource"
	}
	RespondWithError(c, http.StatusForbidden, detail)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, detail)
}

// InternalError sends a 500 response. The detail is always generic so
// storage errors never leak to clients.
func InternalError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	RespondWithError(c, http.StatusInternalServerError, detail)
}
