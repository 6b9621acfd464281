// Package permissions holds the object-level access checks. Each check is a
// Predicate built for a concrete resource; handlers combine them with AnyOf
// the same way stacked permission classes would be OR-ed together.
package permissions

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"annotate/models"
)

// Request The acting identity and HTTP method a predicate is evaluated against.
type Request struct {
	User   *models.User
	Method string
}

type Predicate func(req Request) bool

// IsReadOnly Report whether the method cannot mutate state.
func IsReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// AnyOf Allow the request when any of the predicates allows it.
func AnyOf(preds ...Predicate) Predicate {
	return func(req Request) bool {
		for _, pred := range preds {
			if pred(req) {
				return true
			}
		}
		return false
	}
}

// OwnerAndReadOnly Requester owns the resource and the request is a read.
func OwnerAndReadOnly(obj models.Owned) Predicate {
	return func(req Request) bool {
		return IsReadOnly(req.Method) && req.User.Email == obj.GetOwnerEmail()
	}
}

// OwnerOrRefuse Requester owns the resource, any method.
func OwnerOrRefuse(obj models.Owned) Predicate {
	return func(req Request) bool {
		return req.User.Email == obj.GetOwnerEmail()
	}
}

// OwnerOrReadOnly Requester owns the resource, or the request is a read.
func OwnerOrReadOnly(obj models.Owned) Predicate {
	return func(req Request) bool {
		return IsReadOnly(req.Method) || req.User.Email == obj.GetOwnerEmail()
	}
}

// ReadOnlyAndHasAccess The request is a read and the requester belongs to a
// group in the image's view ACL.
func ReadOnlyAndHasAccess(db *gorm.DB, image *models.Image) Predicate {
	return func(req Request) bool {
		if !IsReadOnly(req.Method) {
			return false
		}
		ok, err := image.ViewableBy(db, req.User)
		if err != nil {
			log.Warn(fmt.Sprintf("Error checking view access for image %d: %s", image.ID, err.Error()))
			return false
		}
		return ok
	}
}

// ReadOnlyAndPublic The request is a read and the image's view ACL contains
// the public group.
func ReadOnlyAndPublic(db *gorm.DB, image *models.Image) Predicate {
	return func(req Request) bool {
		if !IsReadOnly(req.Method) {
			return false
		}
		ok, err := image.IsPublic(db)
		if err != nil {
			log.Warn(fmt.Sprintf("Error checking public access for image %d: %s", image.ID, err.Error()))
			return false
		}
		return ok
	}
}

// CanViewImage The OR-composed gate used for image media retrieval: owner
// read, group-granted read, or public read.
func CanViewImage(db *gorm.DB, image *models.Image) Predicate {
	return AnyOf(
		OwnerAndReadOnly(image),
		ReadOnlyAndHasAccess(db, image),
		ReadOnlyAndPublic(db, image),
	)
}
