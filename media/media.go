// Package media resolves stored image paths to delivery targets behind a
// protected namespace. When a bucket is configured the object name is
// exchanged for a short-lived signed URL; otherwise the local filename is
// served directly.
package media

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"
)

// RedirectPrefix The internal namespace the frontend proxy serves media from.
const RedirectPrefix = "/protected_media/"

// SignedURLExpiry How long a signed delivery URL stays valid.
const SignedURLExpiry = 900 * time.Second

// Signer Exchange an object name for a time-limited delivery URL.
type Signer interface {
	SignedURL(object string, expiry time.Duration) (string, error)
}

// Gateway Resolve images to delivery paths. A nil signer means local delivery.
type Gateway struct {
	signer Signer
}

func NewGateway(signer Signer) *Gateway {
	return &Gateway{signer: signer}
}

// NewGatewayFromEnv Build a gateway from the MEDIA_BUCKET and
// GOOGLE_APPLICATION_CREDENTIALS environment variables. An unset bucket
// yields a local-delivery gateway.
func NewGatewayFromEnv() (*Gateway, error) {
	bucket := strings.TrimSpace(os.Getenv("MEDIA_BUCKET"))
	if bucket == "" {
		return NewGateway(nil), nil
	}
	signer, err := NewGCSSigner(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), bucket)
	if err != nil {
		return nil, fmt.Errorf("cannot build media signer for bucket %s: %w", bucket, err)
	}
	return NewGateway(signer), nil
}

// ResolveDeliveryPath Derive the object filename from the stored path and
// return the internal redirect target pointing at it.
func (g *Gateway) ResolveDeliveryPath(storedPath string) (string, error) {
	object := path.Base(strings.Trim(storedPath, "/"))

	if g.signer == nil {
		return RedirectPrefix + object, nil
	}

	signed, err := g.signer.SignedURL(object, SignedURLExpiry)
	if err != nil {
		return "", err
	}
	return RedirectPrefix + strings.Trim(signed, "/"), nil
}
