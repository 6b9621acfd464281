package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"annotate/media"
	"annotate/models"
	"annotate/permissions"
)

// FindImages Find all images with their view ACLs.
func FindImages(c *gin.Context) {
	var images []models.Image
	models.DB.Preload("ViewGroups").Find(&images)

	c.JSON(http.StatusOK, gin.H{"data": images})
}

type CreateImageInput struct {
	Path      string `json:"path" binding:"required"`
	ProjectID uint   `json:"project_id" binding:"required"`
}

// CreateImage Create a new image owned by the requester.
func CreateImage(c *gin.Context) {
	var input CreateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var project models.Project
	if err := models.DB.First(&project, input.ProjectID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("project %d does not exist", input.ProjectID)})
		return
	}

	image := models.Image{Path: input.Path, ProjectID: project.ID, OwnerEmail: user.Email}
	if err := models.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info(fmt.Sprintf("Imported image %s into project %d for %s", image.Path, project.ID, user.Email))
	c.JSON(http.StatusCreated, gin.H{"data": image})
}

// FindImage Find an image's metadata. Owner only.
func FindImage(c *gin.Context) {
	image, err := models.GetImageByID(models.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := permissions.Request{User: &user, Method: c.Request.Method}
	if !permissions.OwnerOrRefuse(&image)(req) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": image})
}

// DeleteImage Delete an image. Owner only.
func DeleteImage(c *gin.Context) {
	image, err := models.GetImageByID(models.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := permissions.Request{User: &user, Method: c.Request.Method}
	if !permissions.OwnerOrRefuse(&image)(req) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	models.DB.Delete(&image)
	c.Status(http.StatusNoContent)
}

// GetImage Resolve an image to its delivery path behind the protected media
// namespace. Access is owner read, group-granted read, or public read.
func GetImage(gateway *media.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, err := models.GetImageByID(models.DB, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}

		user, err := CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		req := permissions.Request{User: &user, Method: c.Request.Method}
		if !permissions.CanViewImage(models.DB, &image)(req) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		target, err := gateway.ResolveDeliveryPath(image.Path)
		if err != nil {
			log.Warn(fmt.Sprintf("Error resolving delivery path for image %d: %s", image.ID, err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("X-Accel-Redirect", target)
		c.Status(http.StatusOK)
	}
}

type ShareImagesInput struct {
	ImageIDs []uint `json:"image_ids" binding:"required"`
	GroupIDs []uint `json:"group_ids"`
	Public   bool   `json:"public"`
}

// ShareImages Grant view permission on the listed images to the listed
// groups, and to the public group when requested. The requester must own
// every referenced image; nothing is written otherwise.
func ShareImages(c *gin.Context) {
	var input ShareImagesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.GroupIDs) == 0 && !input.Public {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_ids or public is required"})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	images, ok := ownedImages(c, &user, input.ImageIDs)
	if !ok {
		return
	}

	var groups []models.Group
	if len(input.GroupIDs) > 0 {
		models.DB.Where("id IN ?", input.GroupIDs).Find(&groups)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var publicGroup models.Group
		if input.Public {
			if err := tx.First(&publicGroup, models.PublicGroupID).Error; err != nil {
				return err
			}
		}
		for i := range images {
			if input.Public {
				if err := images[i].GrantView(tx, &publicGroup); err != nil {
					return err
				}
			}
			for g := range groups {
				if err := images[i].GrantView(tx, &groups[g]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info(fmt.Sprintf("Shared %d images with %d groups (public=%t) for %s",
		len(images), len(groups), input.Public, user.Email))
	c.Status(http.StatusOK)
}

type UnshareImagesInput struct {
	ImageIDs []uint `json:"image_ids" binding:"required"`
	GroupIDs []uint `json:"group_ids" binding:"required"`
}

// UnshareImages Remove view permission grants. Symmetric to ShareImages.
func UnshareImages(c *gin.Context) {
	var input UnshareImagesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	images, ok := ownedImages(c, &user, input.ImageIDs)
	if !ok {
		return
	}

	var groups []models.Group
	models.DB.Where("id IN ?", input.GroupIDs).Find(&groups)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for i := range images {
			for g := range groups {
				if err := images[i].RevokeView(tx, &groups[g]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

// ownedImages Load the referenced images and verify the requester owns each
// one before any grant is touched. Writes the error response itself.
func ownedImages(c *gin.Context, user *models.User, imageIDs []uint) ([]models.Image, bool) {
	var images []models.Image
	models.DB.Where("id IN ?", imageIDs).Find(&images)

	req := permissions.Request{User: user, Method: c.Request.Method}
	for i := range images {
		if !permissions.OwnerOrRefuse(&images[i])(req) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return nil, false
		}
	}
	return images, true
}
