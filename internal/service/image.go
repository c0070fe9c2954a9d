package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/snapzoska/backend/config"
)

const (
	// MaxProfileImageBytes caps inline profile images so oversized rows never
	// hit the user table.
	MaxProfileImageBytes = 2 * 1024 * 1024
	// MaxPostImageBytes caps post image uploads.
	MaxPostImageBytes = 5 * 1024 * 1024
)

var (
	// ErrImageTooLarge is returned when an upload exceeds its size cap.
	ErrImageTooLarge = errors.New("file too large")
	// ErrNotAnImage is returned when the content type is not image/*.
	ErrNotAnImage = errors.New("file must be an image")
)

// ImageService validates uploads and stores them, either in S3 when a bucket
// is configured or inline as a base64 data URI.
type ImageService struct {
	s3Config *config.S3Config
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService. A nil s3Config switches the
// service to inline data-URI storage.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// ValidateImage checks the content type and byte size of an upload. Content
// is not inspected beyond the MIME-type prefix.
func ValidateImage(contentType string, size int64, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > maxBytes {
		return ErrImageTooLarge
	}
	return nil
}

// EncodeDataURI renders image bytes as an inline base64 data URI.
func EncodeDataURI(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// StoreProfileImage validates and stores a profile image, returning the URL
// or data URI to put on the user row. Limit is 2MB.
func (s *ImageService) StoreProfileImage(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	if err := ValidateImage(contentType, int64(len(data)), MaxProfileImageBytes); err != nil {
		return "", err
	}
	return s.store(ctx, fmt.Sprintf("profile-images/%s%s", userID, extensionFor(contentType)), contentType, data)
}

// StorePostImage validates and stores a post image. Limit is 5MB.
func (s *ImageService) StorePostImage(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	if err := ValidateImage(contentType, int64(len(data)), MaxPostImageBytes); err != nil {
		return "", err
	}
	key := fmt.Sprintf("post-images/%s/%s%s", userID, uuid.New(), extensionFor(contentType))
	return s.store(ctx, key, contentType, data)
}

func (s *ImageService) store(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.s3Config == nil {
		return EncodeDataURI(contentType, data), nil
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("Uploaded image to %s", url)
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
