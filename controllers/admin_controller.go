package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafein/api-go/models"
)

// AdminController covers the operator-only user management endpoints.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// ListUsers godoc
// @Summary List registered users
// @Description Paginated list of users with their role
// @Tags admin
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (ac *AdminController) ListUsers(c *gin.Context) {
	var query struct {
		Page     int    `form:"page,default=0" binding:"min=0"`
		PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	base := func() *gorm.DB {
		q := ac.DB.Model(&models.User{})
		if query.Search != "" {
			pattern := "%" + query.Search + "%"
			q = q.Where("LOWER(email) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users", "success": false})
		return
	}

	var users []models.User
	if err := base().Preload("Role").
		Order("created_at DESC").
		Offset(query.Page * query.PageSize).
		Limit(query.PageSize).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users", "success": false})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":            u.ID,
			"email":         u.Email,
			"fullName":      u.FullName,
			"role":          u.Role.Name,
			"provider":      u.Provider,
			"emailVerified": u.EmailVerified,
			"createdAt":     u.CreatedAt,
		})
	}

	totalPages := int((total + int64(query.PageSize) - 1) / int64(query.PageSize))
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    out,
		Pagination: &PaginationMeta{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// ConfirmEmail godoc
// @Summary Mark a user's email as verified
// @Tags admin
// @Router /admin/users/confirm [post]
func (ac *AdminController) ConfirmEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	if user.EmailVerified {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email already verified"})
		return
	}

	if err := ac.DB.Model(&user).Update("email_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm email", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
}

// SetRole godoc
// @Summary Change a user's role
// @Description Assigns admin, store_manager or user
// @Tags admin
// @Router /admin/users/{userId}/role [put]
func (ac *AdminController) SetRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=admin store_manager user"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var role models.Role
	if err := ac.DB.Where("name = ?", input.Role).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Role not found", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	if err := ac.DB.Model(&user).Update("role_id", role.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated",
		"user":    gin.H{"id": user.ID, "email": user.Email, "role": role.Name},
	})
}
