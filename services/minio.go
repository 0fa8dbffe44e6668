package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"tentamenbank-api/config"
	"tentamenbank-api/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOService struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

func NewMinIOService(cfg *config.Config) (*MinIOService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOService{
		client: client,
		bucket: cfg.MinIOBucket,
		urlTTL: cfg.PresignedURLTTL,
	}, nil
}

// ListKeys returns every object key under prefix in bucket, in listing order.
// minio-go follows continuation tokens, so the result is not capped at one page.
func (s *MinIOService) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	log.Printf("MinIOService - ListKeys %s/%s", bucket, prefix)
	var keys []string

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	for object := range s.client.ListObjects(ctx, bucket, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrStorageList, bucket, prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}

	// a cancelled context closes the channel without an error object
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrStorageList, bucket, prefix, err)
	}

	return keys, nil
}

// GetPresignedURL returns a time-limited download link for a catalog object
func (s *MinIOService) GetPresignedURL(ctx context.Context, objectPath string) (*models.PresignedURLResponse, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=\"%s\"", extractFileName(objectPath)))

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, objectPath, s.urlTTL, reqParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned url: %w", err)
	}

	return &models.PresignedURLResponse{
		URL:       presignedURL.String(),
		ExpiresAt: time.Now().Add(s.urlTTL),
		FileName:  extractFileName(objectPath),
	}, nil
}

// ObjectExists checks a key in the catalog bucket
func (s *MinIOService) ObjectExists(ctx context.Context, objectPath string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, objectPath, minio.StatObjectOptions{})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DownloadFile reads a whole object from bucket
func (s *MinIOService) DownloadFile(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// UploadFile writes an object to bucket
func (s *MinIOService) UploadFile(ctx context.Context, bucket, objectPath string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a missing-object response from the store
func IsNotFound(err error) bool {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return false
	}
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
