package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cafein/api-go/repository"
)

type ImageController struct {
	Repos *repository.Repositories
}

func NewImageController(repos *repository.Repositories) *ImageController {
	return &ImageController{Repos: repos}
}

// UploadImage accepts a multipart photo, stores it in the bucket and inserts
// the image row.
func (ic *ImageController) UploadImage(c *gin.Context) {
	cafeID, err := uuid.Parse(c.Param("cafeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required", "success": false})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type", "success": false})
		return
	}
	if header.Size > 10*1024*1024 { // 10MB
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit", "success": false})
		return
	}

	isPrimary, _ := strconv.ParseBool(c.PostForm("is_primary"))

	img, err := ic.Repos.Images.Upload(c.Request.Context(), cafeID, header.Filename, file, contentType, isPrimary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: img, Message: "Image uploaded successfully"})
}

// DeleteImage removes the stored object (best-effort) and the row.
func (ic *ImageController) DeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
		return
	}

	img, err := ic.Repos.Images.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching image", "success": false})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found", "success": false})
		return
	}

	if err := ic.Repos.Images.Delete(c.Request.Context(), img.ID, img.CafeID, img.ImageURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Image deleted successfully"})
}

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}
	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}
