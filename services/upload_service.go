package services

import (
	"context"
	"fmt"
)

// UploadURLIssuer issues a presigned direct-upload URL.
type UploadURLIssuer interface {
	GenerateUploadURL(ctx context.Context) (string, error)
}

// UploadService hands out presigned upload URLs for banner images.
type UploadService struct {
	issuer UploadURLIssuer
}

func NewUploadService(issuer UploadURLIssuer) *UploadService {
	return &UploadService{issuer: issuer}
}

// GenerateUploadURL returns a time-limited URL for a client-side upload.
func (s *UploadService) GenerateUploadURL(ctx context.Context) (string, error) {
	url, err := s.issuer.GenerateUploadURL(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return url, nil
}
