package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/repository"
)

type MenuController struct {
	Repos *repository.Repositories
}

func NewMenuController(repos *repository.Repositories) *MenuController {
	return &MenuController{Repos: repos}
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	var input struct {
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"min=0"`
		Category    string  `json:"category" binding:"required,oneof=coffee non_coffee food"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	menu := models.CafeMenu{
		CafeID:      cafeID,
		Name:        input.Name,
		Price:       input.Price,
		Category:    models.MenuCategory(input.Category),
		Description: input.Description,
		IsAvailable: true,
	}
	if err := mc.Repos.Menus.Create(c.Request.Context(), &menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: menu, Message: "Menu item created successfully"})
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := uuid.Parse(c.Param("menuId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu id"})
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category" binding:"omitempty,oneof=coffee non_coffee food"`
		Description *string  `json:"description"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative", "success": false})
			return
		}
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update", "success": false})
		return
	}

	menu, err := mc.Repos.Menus.Update(c.Request.Context(), id, updates)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: menu, Message: "Menu item updated successfully"})
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}
	id, err := uuid.Parse(c.Param("menuId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu id"})
		return
	}

	if err := mc.Repos.Menus.Delete(c.Request.Context(), id, cafeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found", "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Menu item deleted successfully"})
}
