package models

// Owned is implemented by resources that carry an owner email.
type Owned interface {
	GetOwnerEmail() string
}
