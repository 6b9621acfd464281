package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"annotate/models"
)

// FindAnnotationsList Find all annotation payloads.
func FindAnnotationsList(c *gin.Context) {
	var annotations []models.AnnotationsJSON
	models.DB.Find(&annotations)

	c.JSON(http.StatusOK, gin.H{"data": annotations})
}

type CreateAnnotationsInput struct {
	ImageID  uint   `json:"image_id" binding:"required"`
	Contents string `json:"contents" binding:"required"`
}

// CreateAnnotations Attach a new annotation payload to an image, owned by
// the requester.
func CreateAnnotations(c *gin.Context) {
	var input CreateAnnotationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var image models.Image
	if err := models.DB.First(&image, input.ImageID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image %d does not exist", input.ImageID)})
		return
	}

	annotations := models.AnnotationsJSON{
		ImageID:    image.ID,
		Contents:   input.Contents,
		OwnerEmail: user.Email,
	}
	if err := models.DB.Create(&annotations).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": annotations})
}

// FindAnnotations Find one annotation payload.
func FindAnnotations(c *gin.Context) {
	var annotations models.AnnotationsJSON
	if err := models.DB.Where("id = ?", c.Param("id")).First(&annotations).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": annotations})
}
