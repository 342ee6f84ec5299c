package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cafein/api-go/controllers"
	"github.com/cafein/api-go/middleware"
	"github.com/cafein/api-go/models"
)

func SetupCafeRoutes(protected *gin.RouterGroup, cafeController *controllers.CafeController, menuController *controllers.MenuController, hoursController *controllers.HoursController, reviewController *controllers.ReviewController, imageController *controllers.ImageController) {
	cafes := protected.Group("/cafes")

	// Any signed-in user may review.
	cafes.POST("/:cafeId/reviews", reviewController.CreateReview)

	// Writes to the cafe record itself are for operators only.
	manage := cafes.Group("")
	manage.Use(middleware.RequireRole(models.RoleAdmin, models.RoleStoreManager))
	{
		manage.POST("", cafeController.CreateCafe)
		manage.PUT("/:cafeId", cafeController.UpdateCafe)
		manage.DELETE("/:cafeId", cafeController.DeleteCafe)

		manage.POST("/:cafeId/menus", menuController.CreateMenu)
		manage.PUT("/:cafeId/menus/:menuId", menuController.UpdateMenu)
		manage.DELETE("/:cafeId/menus/:menuId", menuController.DeleteMenu)

		manage.PUT("/:cafeId/hours", hoursController.UpsertHours)

		manage.POST("/:cafeId/images", imageController.UploadImage)
		manage.DELETE("/:cafeId/images/:imageId", imageController.DeleteImage)
	}
}
