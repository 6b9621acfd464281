package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model
	Name       string  `json:"name"`
	OwnerEmail string  `json:"owner_email"`
	Images     []Image `json:"images" gorm:"foreignKey:ProjectID"`
}

func (p *Project) GetOwnerEmail() string {
	return p.OwnerEmail
}
