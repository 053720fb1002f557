package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Uploader issues presigned URLs for direct client uploads to S3.
type Uploader struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// NewUploader loads AWS credentials from the default chain and builds a
// presign client for the given region and bucket.
func NewUploader(ctx context.Context, region, bucket string, expiry time.Duration) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &Uploader{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
	}, nil
}

// GenerateUploadURL returns a time-limited URL the client can PUT a jpeg
// banner image to. The object is named with a random token plus timestamp so
// concurrent uploads never collide.
func (u *Uploader) GenerateUploadURL(ctx context.Context) (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	key := fmt.Sprintf("%s-%d.jpeg", token, time.Now().UnixMilli())

	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String("image/jpeg"),
	}, s3.WithPresignExpires(u.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return req.URL, nil
}
