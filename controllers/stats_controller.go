package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafein/api-go/repository"
)

type StatsController struct {
	Repos *repository.Repositories
}

func NewStatsController(repos *repository.Repositories) *StatsController {
	return &StatsController{Repos: repos}
}

// GetDashboardStats godoc
// @Summary Directory-wide statistics for the dashboard
// @Description Cafe count is exact; total reviews and average rating are
// computed over a bounded sample and may be approximate on large directories.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats/dashboard [get]
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	stats, err := sc.Repos.Stats.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCafes":   stats.TotalCafes,
		"totalReviews": stats.TotalReviews,
		"avgRating":    fmt.Sprintf("%.1f", stats.AvgRating),
		"sampleSize":   stats.SampleSize,
		"topCafes":     stats.TopCafes,
	})
}
