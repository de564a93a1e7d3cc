package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/services"
)

type AdminController struct {
	Analytics *repository.AnalyticsRepository
	Notifier  *services.NotificationService
}

func NewAdminController(analytics *repository.AnalyticsRepository, notifier *services.NotificationService) *AdminController {
	return &AdminController{Analytics: analytics, Notifier: notifier}
}

// GET /admin/dashboard — the back-office overview numbers.
func (ac *AdminController) Dashboard(c *gin.Context) {
	totalUsers, err := ac.Analytics.CountUsers()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	totalProviders, err := ac.Analytics.CountProviders()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	totalOrders, err := ac.Analytics.CountOrders(0)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	ordersToday, err := ac.Analytics.CountOrdersSince(time.Now().Truncate(24 * time.Hour))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	totalRevenue, err := ac.Analytics.TotalRevenue(0)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	ordersByStatus, err := ac.Analytics.OrdersByStatus(0)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	usersByRole, err := ac.Analytics.UsersByRole()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	recentOrders, err := ac.Analytics.RecentOrders(0, 10)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"totalUsers":     totalUsers,
		"totalProviders": totalProviders,
		"totalOrders":    totalOrders,
		"ordersToday":    ordersToday,
		"totalRevenue":   totalRevenue,
		"ordersByStatus": ordersByStatus,
		"usersByRole":    usersByRole,
		"recentOrders":   recentOrders,
	})
}

type BroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /admin/broadcast — promotion notification for every active user.
func (ac *AdminController) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	sent, err := ac.Notifier.Broadcast(req.Title, req.Message)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": sent})
}
