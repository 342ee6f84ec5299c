package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/repository"
	"github.com/cafein/api-go/utils"
)

type ReviewController struct {
	Repos *repository.Repositories
}

func NewReviewController(repos *repository.Repositories) *ReviewController {
	return &ReviewController{Repos: repos}
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	cafeID, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	var input struct {
		Rating         int     `json:"rating" binding:"required,min=1,max=5"`
		Comment        *string `json:"comment"`
		IsAdminCreated bool    `json:"is_admin_created"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	review := models.Review{
		CafeID:  cafeID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	// Admin-created reviews are unattributed imports; everyone else reviews
	// under their own account.
	if input.IsAdminCreated && user.Role == models.RoleAdmin {
		review.IsAdminCreated = true
	} else {
		userID := user.UserID
		review.UserID = &userID
	}

	if err := rc.Repos.Reviews.Create(c.Request.Context(), &review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: review, Message: "Review created successfully"})
}
