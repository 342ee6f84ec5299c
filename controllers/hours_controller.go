package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/repository"
)

type HoursController struct {
	Repos *repository.Repositories
}

func NewHoursController(repos *repository.Repositories) *HoursController {
	return &HoursController{Repos: repos}
}

// UpsertHours inserts or replaces the operating hours for one day of the
// week, keyed by (cafe, day_of_week).
func (hc *HoursController) UpsertHours(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	var input struct {
		DayOfWeek *int    `json:"day_of_week" binding:"required,min=0,max=6"`
		OpenTime  *string `json:"open_time"`
		CloseTime *string `json:"close_time"`
		IsClosed  bool    `json:"is_closed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hours := models.OperatingHours{
		CafeID:    cafeID,
		DayOfWeek: *input.DayOfWeek,
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		IsClosed:  input.IsClosed,
	}
	out, err := hc.Repos.Hours.Upsert(c.Request.Context(), &hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save operating hours", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: out, Message: "Operating hours saved successfully"})
}
