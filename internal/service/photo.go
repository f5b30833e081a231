package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platewise/backend/config"
)

// photoURLExpiry is the lifetime of returned photo links. Seven days
// is the SigV4 presigning maximum.
const photoURLExpiry = 7 * 24 * time.Hour

// PhotoStorage stores uploaded meal photos in S3. It is optional at
// runtime; when no bucket is configured the upload pipeline simply
// skips the photo and keeps the analysis.
type PhotoStorage struct {
	s3cfg *config.S3Config
}

// NewPhotoStorage creates a new PhotoStorage instance
func NewPhotoStorage(s3cfg *config.S3Config) *PhotoStorage {
	return &PhotoStorage{s3cfg: s3cfg}
}

// Store uploads the photo bytes under a fresh key and returns a
// presigned GET URL. The bucket stays private; the link is the only
// access path.
func (p *PhotoStorage) Store(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("meals/%s/%s.jpg", userID, uuid.New())

	_, err := p.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.s3cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return p.s3cfg.GeneratePresignedURL(ctx, key, photoURLExpiry)
}
