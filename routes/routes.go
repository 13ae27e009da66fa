package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartbite/controllers"
	"smartbite/middleware"
	"smartbite/repositories"
	"smartbite/services"
	"smartbite/utils"
)

func SetupRoutes(router *gin.Engine) {
	dishRepo := repositories.NewDishRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository(cartRepo)
	reviewRepo := repositories.NewReviewRepository()

	authCtrl := controllers.NewAuthController(utils.NewOTPStore(10 * time.Minute))
	dishCtrl := controllers.NewDishController(dishRepo)
	cartCtrl := controllers.NewCartController(services.NewCartService(dishRepo, cartRepo))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(orderRepo))
	paymentCtrl := controllers.NewPaymentController()
	reviewCtrl := controllers.NewReviewController(services.NewReviewService(reviewRepo))
	chatCtrl := controllers.NewChatController()
	adminCtrl := controllers.NewAdminController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/forgot-password", authCtrl.ForgotPassword)
	router.POST("/auth/reset-password", authCtrl.ResetPassword)

	router.GET("/categories", dishCtrl.GetAllCategories)
	router.GET("/dishes", dishCtrl.GetAllDishes)
	router.GET("/dishes/:id", dishCtrl.GetDishByID)
	router.GET("/reviews", reviewCtrl.GetReviews)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.POST("/cart", cartCtrl.AddToCart)
		auth.GET("/cart", cartCtrl.GetCart)
		auth.PUT("/cart/:itemId", cartCtrl.UpdateCartItem)
		auth.PATCH("/cart/:itemId", cartCtrl.UpdateCartItem)
		auth.DELETE("/cart/:itemId", cartCtrl.RemoveCartItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:orderId", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:orderId", orderCtrl.UpdateOrderStatus)
		auth.PUT("/orders/:orderId/status", orderCtrl.UpdateOrderStatus)

		auth.POST("/payments", paymentCtrl.UpdatePayment)
		auth.POST("/reviews", reviewCtrl.SubmitReview)
		auth.POST("/chat", chatCtrl.Chat)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/dishes", dishCtrl.CreateDish)
		admin.PUT("/dishes/:id", dishCtrl.UpdateDish)
		admin.DELETE("/dishes/:id", dishCtrl.DeleteDish)
		admin.POST("/dishes/:id/image", dishCtrl.UploadDishImage)
		admin.POST("/categories/seed", dishCtrl.SeedCategories)
		admin.GET("/stats", adminCtrl.GetStats)
	}

	router.Static("/uploads", "./uploads")
}
