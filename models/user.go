package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string  `json:"email" gorm:"uniqueIndex;size:191"`
	Password string  `json:"-"`
	Groups   []Group `json:"groups" gorm:"many2many:user_groups"`
}

// HashPassword Replace the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// VerifyPassword Compare a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// JoinGroup Add the user to a group. Appending twice is a no-op.
func (u *User) JoinGroup(db *gorm.DB, group *Group) error {
	return db.Model(u).Association("Groups").Append(group)
}

// LeaveGroup Remove the user from a group.
func (u *User) LeaveGroup(db *gorm.DB, group *Group) error {
	return db.Model(u).Association("Groups").Delete(group)
}

// InGroupNamed Report whether the user is a member of the group with the given name.
func (u *User) InGroupNamed(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Table("user_groups").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("user_groups.user_id = ? AND groups.name = ?", u.ID, name).
		Count(&count).Error
	return count > 0, err
}

// GetUserByID Fetch a user by primary key.
func GetUserByID(db *gorm.DB, id uint) (User, error) {
	var user User
	err := db.First(&user, id).Error
	return user, err
}

// GetUserByEmail Fetch a user by its unique email.
func GetUserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.Where("email = ?", email).First(&user).Error
	return user, err
}
