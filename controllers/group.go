package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"annotate/models"
)

type CreateGroupInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateGroup Create a new group. The creator joins it immediately.
func CreateGroup(c *gin.Context) {
	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	group := models.Group{Name: input.Name}
	if err := models.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := user.JoinGroup(models.DB, &group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info(fmt.Sprintf("Created group %s for %s", group.Name, user.Email))
	c.JSON(http.StatusCreated, gin.H{"data": group})
}

type GroupMemberInput struct {
	Email string `json:"email" binding:"required,email"`
}

// AddGroupMember Add a user to a group. The acting user must already be a
// member of the group, whatever the target is.
func AddGroupMember(c *gin.Context) {
	mutateMembership(c, func(target *models.User, group *models.Group) error {
		return target.JoinGroup(models.DB, group)
	})
}

// RemoveGroupMember Remove a user from a group. Same authorization rule as
// AddGroupMember.
func RemoveGroupMember(c *gin.Context) {
	mutateMembership(c, func(target *models.User, group *models.Group) error {
		return target.LeaveGroup(models.DB, group)
	})
}

func mutateMembership(c *gin.Context, apply func(target *models.User, group *models.Group) error) {
	groupName := c.Param("name")

	user, err := CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Authorization by membership, checked before anything else.
	member, err := user.InGroupNamed(models.DB, groupName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var input GroupMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := models.GetUserByEmail(models.DB, input.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	group, err := models.GetGroupByName(models.DB, groupName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	if err := apply(&target, &group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
