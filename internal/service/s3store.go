package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/config"
)

// S3ImageStore is the bucket-backed alternative to the hosted image API.
// It satisfies the same Upload contract and is selected with
// IMAGE_STORE_BACKEND=s3.
type S3ImageStore struct {
	s3Config *config.S3Config
	logger   *zap.Logger
}

// NewS3ImageStore creates a new S3ImageStore instance
func NewS3ImageStore(s3Config *config.S3Config, logger *zap.Logger) *S3ImageStore {
	return &S3ImageStore{
		s3Config: s3Config,
		logger:   logger,
	}
}

// Upload stores the image bytes under a fresh object key and returns the
// bucket's public URL for it.
func (s *S3ImageStore) Upload(ctx context.Context, imageData []byte) (string, error) {
	fileName := fmt.Sprintf("dish-images/%s.png", uuid.New().String())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	s.logger.Info("uploaded image to S3", zap.String("url", publicURL))

	return publicURL, nil
}
