package media

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSSigner Produces signed GET URLs for objects in a single GCS bucket.
type GCSSigner struct {
	client *storage.Client
	bucket string
}

// NewGCSSigner Build a signer from a service account credentials file.
func NewGCSSigner(credentialsFile, bucket string) (*GCSSigner, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("credentials file is required to sign for bucket %s", bucket)
	}
	client, err := storage.NewClient(context.Background(),
		option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSSigner{client: client, bucket: bucket}, nil
}

// SignedURL Exchange an object name for a time-limited GET URL.
func (s *GCSSigner) SignedURL(object string, expiry time.Duration) (string, error) {
	signed, err := s.client.Bucket(s.bucket).SignedURL(object, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("sign %s/%s: %w", s.bucket, object, err)
	}
	return signed, nil
}
