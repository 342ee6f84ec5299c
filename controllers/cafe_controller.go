package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/repository"
	"github.com/cafein/api-go/utils"
)

type CafeController struct {
	Repos *repository.Repositories
}

func NewCafeController(repos *repository.Repositories) *CafeController {
	return &CafeController{Repos: repos}
}

type CafeListQuery struct {
	Page       int    `form:"page,default=0" binding:"min=0"`
	PageSize   int    `form:"pageSize,default=20" binding:"min=1,max=100"`
	Search     string `form:"search"`
	WithImages bool   `form:"withImages"`
}

// GetCafes godoc
// @Summary List cafes with pagination and free-text search
// @Tags cafes
// @Produce json
// @Param page query integer false "Page index, 0-based (default: 0)"
// @Param pageSize query integer false "Items per page (default: 20, max: 100)"
// @Param search query string false "Words matched against name or address"
// @Param withImages query boolean false "Attach images to each row"
// @Success 200 {object} StandardResponse
// @Router /cafes [get]
func (cc *CafeController) GetCafes(c *gin.Context) {
	var query CafeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := cc.Repos.Cafes.List(c.Request.Context(), query.Page, query.PageSize, query.Search, query.WithImages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cafes"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result.Cafes,
		Pagination: &PaginationMeta{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalItems: result.TotalCount,
			TotalPages: int(math.Ceil(float64(result.TotalCount) / float64(query.PageSize))),
		},
	})
}

// GetCafeDetails godoc
// @Summary Get one cafe with hours, menus, reviews and images
// @Tags cafes
// @Produce json
// @Param cafeId path string true "Cafe ID"
// @Success 200 {object} StandardResponse
// @Router /cafes/{cafeId} [get]
func (cc *CafeController) GetCafeDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	cafe, err := cc.Repos.Cafes.GetWithDetails(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cafe"})
		return
	}
	if cafe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: cafe})
}

func (cc *CafeController) CreateCafe(c *gin.Context) {
	var input struct {
		Name      string   `json:"name" binding:"required,min=2"`
		Address   string   `json:"address" binding:"required,min=5"`
		Phone     *string  `json:"phone"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	cafe := models.Cafe{
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		IsActive:  true,
	}
	if user := utils.GetUser(c); user != nil {
		ownerID := user.UserID
		cafe.OwnerID = &ownerID
	}

	if err := cc.Repos.Cafes.Create(c.Request.Context(), &cafe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cafe", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: cafe, Message: "Cafe created successfully"})
}

func (cc *CafeController) UpdateCafe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	var input struct {
		Name      *string  `json:"name"`
		Address   *string  `json:"address"`
		Phone     *string  `json:"phone"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		IsActive  *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Latitude != nil {
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updates["longitude"] = *input.Longitude
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update", "success": false})
		return
	}

	cafe, err := cc.Repos.Cafes.Update(c.Request.Context(), id, updates)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: cafe, Message: "Cafe updated successfully"})
}

func (cc *CafeController) DeleteCafe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	if err := cc.Repos.Cafes.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cafe", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Cafe deleted successfully"})
}
