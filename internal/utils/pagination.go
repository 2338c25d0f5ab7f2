package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/craftsync/task-activity-api/internal/constants"
)

// PaginationParams holds the skip/limit pagination parameters
type PaginationParams struct {
	Skip  int
	Limit int
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(constants.DefaultSkip)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))

	if skip < 0 {
		skip = constants.DefaultSkip
	}
	if limit <= 0 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}

	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}

// GetSortOrder extracts the sort_order query parameter, defaulting to ascending.
func GetSortOrder(c *gin.Context) string {
	order := c.DefaultQuery("sort_order", constants.SortOrderAsc)
	if order != constants.SortOrderAsc && order != constants.SortOrderDesc {
		return constants.SortOrderAsc
	}
	return order
}
