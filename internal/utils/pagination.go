package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nandapratama/todo-share-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// TotalPages computes the page count for a result set. A total of zero still
// yields one (empty) page so that clamping never produces page zero.
func TotalPages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp caps the requested page at the last valid page and recomputes the
// offset.
func (p PaginationParams) Clamp(total int64) PaginationParams {
	totalPages := TotalPages(total, p.Limit)
	if p.Page > totalPages {
		p.Page = totalPages
	}
	p.Offset = (p.Page - 1) * p.Limit
	return p
}
