package models

import "gorm.io/gorm"

// PublicGroupID The sentinel group granting world-readable access.
const PublicGroupID uint = 1

type Group struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:191"`
}

// GetGroupByName Fetch a group by its unique name.
func GetGroupByName(db *gorm.DB, name string) (Group, error) {
	var group Group
	err := db.Where("name = ?", name).First(&group).Error
	return group, err
}
