package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annotate/models"
	"annotate/permissions"
)

type CreateProjectInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateProject Create a new project owned by the requester.
func CreateProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	project := models.Project{Name: input.Name, OwnerEmail: user.Email}
	if err := models.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": project})
}

// FindProject Find a project with its images. Owner, or read-only access.
func FindProject(c *gin.Context) {
	var project models.Project
	if err := models.DB.Preload("Images").Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := permissions.Request{User: &user, Method: c.Request.Method}
	if !permissions.OwnerOrReadOnly(&project)(req) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": project})
}
