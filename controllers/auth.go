package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annotate/middlewares"
	"annotate/models"
	"annotate/utils"
)

// CurrentUser Resolve the acting user from the id the auth middleware attached.
func CurrentUser(c *gin.Context) (models.User, error) {
	uid := c.GetUint(middlewares.UserIDKey)
	return models.GetUserByID(models.DB, uid)
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register Create a new user account.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{Email: input.Email, Password: input.Password}
	if err := user.HashPassword(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := models.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info(fmt.Sprintf("Registered user %s", user.Email))
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login Verify credentials and issue a token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := models.GetUserByEmail(models.DB, input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
		return
	}
	if err := user.VerifyPassword(input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// WhoAmI Return the email of the authenticated user.
func WhoAmI(c *gin.Context) {
	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

// Me Return the authenticated user together with everything it owns.
func Me(c *gin.Context) {
	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var projects []models.Project
	models.DB.Where("owner_email = ?", user.Email).Find(&projects)

	var images []models.Image
	models.DB.Preload("ViewGroups").Where("owner_email = ?", user.Email).Find(&images)

	var annotations []models.AnnotationsJSON
	models.DB.Where("owner_email = ?", user.Email).Find(&annotations)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"email":       user.Email,
		"projects":    projects,
		"images":      images,
		"annotations": annotations,
	}})
}
