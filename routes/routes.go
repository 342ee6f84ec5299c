package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cafein/api-go/controllers"
	"github.com/cafein/api-go/middleware"
	"github.com/cafein/api-go/repository"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, repos *repository.Repositories) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	cafeController := controllers.NewCafeController(repos)
	menuController := controllers.NewMenuController(repos)
	hoursController := controllers.NewHoursController(repos)
	reviewController := controllers.NewReviewController(repos)
	imageController := controllers.NewImageController(repos)
	statsController := controllers.NewStatsController(repos)
	adminController := controllers.NewAdminController(db)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)

		// The directory is readable without an account.
		public.GET("/cafes", cafeController.GetCafes)
		public.GET("/cafes/:cafeId", cafeController.GetCafeDetails)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupCafeRoutes(protected, cafeController, menuController, hoursController, reviewController, imageController)
		SetupStatsRoutes(protected, statsController)
		SetupAdminRoutes(protected, adminController)
	}
}
