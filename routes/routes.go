package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lehar2932-art/tiffin-testing/configs"
	"github.com/lehar2932-art/tiffin-testing/controllers"
	"github.com/lehar2932-art/tiffin-testing/entity"
	"github.com/lehar2932-art/tiffin-testing/middlewares"
	"github.com/lehar2932-art/tiffin-testing/pkg/notify"
	"github.com/lehar2932-art/tiffin-testing/pkg/razorpay"
	"github.com/lehar2932-art/tiffin-testing/repository"
	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/ws"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, db *gorm.DB) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	helpRepo := repository.NewHelpRequestRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Outbound channels are optional; unset keys leave them nil.
	var email services.EmailSender
	if cfg.BrevoAPIKey != "" {
		email = notify.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSender)
	}
	var sms services.SMSSender
	if cfg.TwilioAccountSID != "" {
		sms = notify.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	var payments services.PaymentVerifier
	var gateway controllers.GatewayOrderCreator
	if cfg.RazorpayKeyID != "" {
		cl := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		payments = cl
		gateway = cl
	}

	// Services
	notifier := services.NewNotificationService(notifRepo, userRepo, email, sms)
	hub := ws.NewNotificationHub(notifier)
	notifier.Live = hub

	authSvc := services.NewAuthService(db, userRepo, providerRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, providerRepo, userRepo, notifier, payments, cfg.OrderAutoConfirm)
	reviewSvc := services.NewReviewService(db, reviewRepo, orderRepo, providerRepo)
	helpSvc := services.NewHelpService(helpRepo, userRepo, notifier)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(db, userRepo)
	providerCtrl := controllers.NewProviderController(providerRepo, notifier)
	menuCtrl := controllers.NewMenuController(menuRepo, providerRepo)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(gateway)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	notifCtrl := controllers.NewNotificationController(notifier)
	helpCtrl := controllers.NewHelpRequestController(helpSvc)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsRepo, providerRepo, reviewRepo)
	adminCtrl := controllers.NewAdminController(analyticsRepo, notifier)

	authAny := middlewares.AuthMiddleware(db, cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", authAny)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
		aAuth.POST("/logout-all", authCtrl.LogoutAll)
		aAuth.DELETE("/account", authCtrl.DeleteAccount)
	}

	// Public catalogue
	r.GET("/providers", providerCtrl.List)
	r.GET("/providers/:id", providerCtrl.Detail)
	r.GET("/providers/:id/menus", menuCtrl.ListForProvider)
	r.GET("/providers/:id/reviews", reviewCtrl.ListForProvider)

	// Any authenticated user
	u := r.Group("/", authAny)
	{
		u.POST("/payments/order", paymentCtrl.CreateGatewayOrder)

		// Consumer-only; the service rejects other roles.
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.List)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)

		u.POST("/reviews", reviewCtrl.Create)

		u.GET("/favorites", userCtrl.ListFavorites)
		u.POST("/favorites/:providerId", userCtrl.AddFavorite)
		u.DELETE("/favorites/:providerId", userCtrl.RemoveFavorite)

		u.GET("/settings", userCtrl.GetSettings)
		u.PUT("/settings", userCtrl.SaveSettings)

		u.GET("/notifications", notifCtrl.List)
		u.POST("/notifications/mark-read", notifCtrl.MarkRead)
		u.GET("/ws/notifications", hub.HandleWebSocket)

		u.POST("/help-requests", helpCtrl.Create)
		u.GET("/help-requests", helpCtrl.List)
		u.GET("/help-requests/:id", helpCtrl.Detail)
		u.POST("/help-requests/:id/responses", helpCtrl.Respond)
		u.PATCH("/help-requests/:id", helpCtrl.Update)
	}

	// Partner (provider/admin)
	partner := r.Group("/partner", middlewares.AuthMiddleware(db, cfg.JWTSecret, entity.RoleProvider, entity.RoleAdmin))
	{
		partner.GET("/profile", providerCtrl.MyProfile)
		partner.PATCH("/profile", providerCtrl.UpdateMyProfile)

		partner.GET("/menus", menuCtrl.ListMine)
		partner.POST("/menus", menuCtrl.Create)
		partner.PATCH("/menus/:id", menuCtrl.Update)
		partner.POST("/menus/:id/items", menuCtrl.AddItem)
		partner.PATCH("/menus/:id/items/:itemId", menuCtrl.UpdateItem)
		partner.DELETE("/menus/:id/items/:itemId", menuCtrl.DeleteItem)

		partner.GET("/analytics", analyticsCtrl.ProviderAnalytics)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(db, cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.POST("/broadcast", adminCtrl.Broadcast)

		admin.PATCH("/orders/:id/payment-status", orderCtrl.UpdatePaymentStatus)

		admin.GET("/users", userCtrl.AdminList)
		admin.PATCH("/users/:id", userCtrl.AdminUpdate)
		admin.DELETE("/users/:id", userCtrl.AdminDelete)

		admin.GET("/providers", providerCtrl.AdminList)
		admin.PATCH("/providers/:id/verify", providerCtrl.AdminVerify)

		admin.GET("/reviews", reviewCtrl.AdminList)
		admin.DELETE("/reviews/:id", reviewCtrl.AdminDelete)

		admin.GET("/reports/monthly", analyticsCtrl.MonthlyReport)
		admin.GET("/reports/top-providers", analyticsCtrl.TopProviders)
		admin.GET("/reports/top-items", analyticsCtrl.TopItems)
		admin.GET("/reports/top-customers", analyticsCtrl.TopCustomers)
	}
}
