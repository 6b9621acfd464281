package models

import "gorm.io/gorm"

// AnnotationsJSON An opaque annotation payload attached to a single image.
type AnnotationsJSON struct {
	gorm.Model
	OwnerEmail string `json:"owner_email"`
	ImageID    uint   `json:"image_id"`
	Contents   string `json:"contents"`
}

func (a *AnnotationsJSON) GetOwnerEmail() string {
	return a.OwnerEmail
}
