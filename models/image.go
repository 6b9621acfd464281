package models

import "gorm.io/gorm"

type Image struct {
	gorm.Model
	Path       string  `json:"path"`
	OwnerEmail string  `json:"owner_email"`
	ProjectID  uint    `json:"project_id"`
	ViewGroups []Group `json:"view_groups" gorm:"many2many:image_view_groups"`
}

func (i *Image) GetOwnerEmail() string {
	return i.OwnerEmail
}

// GrantView Add a group to the image's view ACL. Granting twice is a no-op.
func (i *Image) GrantView(db *gorm.DB, group *Group) error {
	return db.Model(i).Association("ViewGroups").Append(group)
}

// RevokeView Remove a group from the image's view ACL.
func (i *Image) RevokeView(db *gorm.DB, group *Group) error {
	return db.Model(i).Association("ViewGroups").Delete(group)
}

// IsPublic Report whether the image's ACL contains the public group.
func (i *Image) IsPublic(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Table("image_view_groups").
		Where("image_id = ? AND group_id = ?", i.ID, PublicGroupID).
		Count(&count).Error
	return count > 0, err
}

// ViewableBy Report whether the user belongs to any group in the image's view ACL.
func (i *Image) ViewableBy(db *gorm.DB, user *User) (bool, error) {
	var count int64
	err := db.Table("image_view_groups").
		Joins("JOIN user_groups ON user_groups.group_id = image_view_groups.group_id").
		Where("image_view_groups.image_id = ? AND user_groups.user_id = ?", i.ID, user.ID).
		Count(&count).Error
	return count > 0, err
}

// GetImageByID Fetch an image by primary key with its view ACL preloaded.
func GetImageByID(db *gorm.DB, id string) (Image, error) {
	var image Image
	err := db.Preload("ViewGroups").Where("id = ?", id).First(&image).Error
	return image, err
}
