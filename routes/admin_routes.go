package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cafein/api-go/controllers"
	"github.com/cafein/api-go/middleware"
	"github.com/cafein/api-go/models"
)

func SetupAdminRoutes(protected *gin.RouterGroup, adminController *controllers.AdminController) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users/confirm", adminController.ConfirmEmail)
		admin.PUT("/users/:userId/role", adminController.SetRole)
	}
}
