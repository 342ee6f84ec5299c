package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cafein/api-go/controllers"
	"github.com/cafein/api-go/middleware"
	"github.com/cafein/api-go/models"
)

func SetupStatsRoutes(protected *gin.RouterGroup, statsController *controllers.StatsController) {
	stats := protected.Group("/stats")
	stats.Use(middleware.RequireRole(models.RoleAdmin, models.RoleStoreManager))
	{
		stats.GET("/dashboard", statsController.GetDashboardStats)
	}
}
