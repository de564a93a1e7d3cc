package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

type AnalyticsController struct {
	Analytics *repository.AnalyticsRepository
	Providers *repository.ProviderRepository
	Reviews   *repository.ReviewRepository
}

func NewAnalyticsController(analytics *repository.AnalyticsRepository, providers *repository.ProviderRepository, reviews *repository.ReviewRepository) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Providers: providers, Reviews: reviews}
}

// GET /partner/analytics — the provider's own numbers.
func (ac *AnalyticsController) ProviderAnalytics(c *gin.Context) {
	provider, err := ac.Providers.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "provider profile not found")
		return
	}

	totalOrders, err := ac.Analytics.CountOrders(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	totalRevenue, err := ac.Analytics.TotalRevenue(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	ordersByStatus, err := ac.Analytics.OrdersByStatus(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	avgOrderValue, err := ac.Analytics.AverageOrderValue(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	ratingHistogram, err := ac.Reviews.RatingHistogram(provider.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	monthly, err := ac.Analytics.MonthlyOrders(provider.ID, 6)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	topItems, err := ac.Analytics.TopItemsByQuantity(provider.ID, 5)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	recentOrders, err := ac.Analytics.RecentOrders(provider.ID, 10)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"totalOrders":     totalOrders,
		"totalRevenue":    totalRevenue,
		"ordersByStatus":  ordersByStatus,
		"avgOrderValue":   avgOrderValue,
		"rating":          provider.Rating,
		"ratingHistogram": ratingHistogram,
		"monthly":         monthly,
		"topItems":        topItems,
		"recentOrders":    recentOrders,
	})
}

func topN(c *gin.Context) int {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	if n <= 0 || n > 100 {
		n = 10
	}
	return n
}

// GET /admin/reports/monthly?months=
func (ac *AnalyticsController) MonthlyReport(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))
	if months <= 0 || months > 36 {
		months = 12
	}
	buckets, err := ac.Analytics.MonthlyOrders(0, months)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, buckets)
}

// GET /admin/reports/top-providers?n=
func (ac *AnalyticsController) TopProviders(c *gin.Context) {
	out, err := ac.Analytics.TopProvidersByRevenue(topN(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/reports/top-items?n=
func (ac *AnalyticsController) TopItems(c *gin.Context) {
	out, err := ac.Analytics.TopItemsByQuantity(0, topN(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/reports/top-customers?n=
func (ac *AnalyticsController) TopCustomers(c *gin.Context) {
	out, err := ac.Analytics.TopCustomersBySpend(topN(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}
