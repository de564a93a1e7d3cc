package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GET /notifications?unread=true&page=&limit=
// The unread count always rides along with the page.
func (nc *NotificationController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	out, err := nc.Notifications.ListForUser(utils.CurrentUserID(c), unreadOnly, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	info := utils.NewPageInfo(page, limit, len(out.Items), out.Total)
	c.JSON(200, gin.H{
		"ok": true,
		"data": gin.H{
			"items":        out.Items,
			"unreadCount":  out.UnreadCount,
			"currentPage":  info.CurrentPage,
			"totalPages":   info.TotalPages,
			"itemCount":    info.ItemCount,
			"totalRecords": info.TotalRecords,
		},
	})
}

type MarkReadRequest struct {
	// Empty or omitted means "mark everything read".
	IDs []uint `json:"ids"`
}

// POST /notifications/mark-read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}

	userID := utils.CurrentUserID(c)
	if err := nc.Notifications.MarkRead(userID, req.IDs); err != nil {
		resp.ServerError(c, err)
		return
	}

	unread, err := nc.Notifications.UnreadCount(userID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"unreadCount": unread})
}
