package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageInfo is the listing contract shared by every paginated endpoint.
type PageInfo struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	ItemCount    int   `json:"itemCount"`
	TotalRecords int64 `json:"totalRecords"`
}

// PageParams reads ?page and ?limit with sane bounds.
func PageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func NewPageInfo(page, limit, itemCount int, total int64) PageInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageInfo{
		CurrentPage:  page,
		TotalPages:   totalPages,
		ItemCount:    itemCount,
		TotalRecords: total,
	}
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}
