package resp

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/utils"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}

// ServerError logs the cause and answers with a generic message; internals
// never leak to the caller.
func ServerError(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}

// Paginated wraps a listing page in the shared pagination contract.
func Paginated(c *gin.Context, items any, info utils.PageInfo) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"data": gin.H{
			"items":        items,
			"currentPage":  info.CurrentPage,
			"totalPages":   info.TotalPages,
			"itemCount":    info.ItemCount,
			"totalRecords": info.TotalRecords,
		},
	})
}
