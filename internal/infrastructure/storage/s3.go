package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"customer-api/internal/config"
	"customer-api/internal/pkg/apperrors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Client wraps a MinIO client targeting any S3-compatible endpoint.
type S3Client struct {
	client *minio.Client
	logger *slog.Logger
}

func NewS3Client(cfg config.S3Config, logger *slog.Logger) (*S3Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("object storage endpoint is empty in configuration")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	logger.Info("Object storage client initialized", "endpoint", cfg.Endpoint)
	return &S3Client{
		client: client,
		logger: logger.With("component", "S3Client"),
	}, nil
}

// EnsureBucket creates the bucket when it does not already exist.
func (s *S3Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to check bucket %q", bucket))
	}
	if exists {
		return nil
	}

	s.logger.Info("Creating object storage bucket", "bucket", bucket)
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to create bucket %q", bucket))
	}
	return nil
}

func (s *S3Client) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	s.logger.DebugContext(ctx, "Putting object", "bucket", bucket, "key", key, "size", len(data))

	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to put object", "bucket", bucket, "key", key, slog.Any("error", err))
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to put object %q", key))
	}
	return nil
}

func (s *S3Client) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	s.logger.DebugContext(ctx, "Getting object", "bucket", bucket, "key", key)

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get object", "bucket", bucket, "key", key, slog.Any("error", err))
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("failed to get object %q", key))
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read object body", "bucket", bucket, "key", key, slog.Any("error", err))
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("failed to read object %q", key))
	}
	return data, nil
}

func (s *S3Client) RemoveObject(ctx context.Context, bucket, key string) error {
	s.logger.DebugContext(ctx, "Removing object", "bucket", bucket, "key", key)

	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove object", "bucket", bucket, "key", key, slog.Any("error", err))
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to remove object %q", key))
	}
	return nil
}

func (s *S3Client) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	s.logger.DebugContext(ctx, "Listing objects", "bucket", bucket, "prefix", prefix)

	keys := make([]string, 0)
	for info := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			s.logger.ErrorContext(ctx, "Failed while listing objects", "bucket", bucket, slog.Any("error", info.Err))
			return nil, apperrors.WrapStorageError(info.Err, fmt.Sprintf("failed to list objects under %q", prefix))
		}
		keys = append(keys, info.Key)
	}
	return keys, nil
}
