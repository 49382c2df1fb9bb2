package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/assetbay/assetbay/common/config"
	"github.com/assetbay/assetbay/common/logger"
)

// Store is the blob storage used for raw asset payloads.
// Each payload is addressed by an opaque generated key; keys are never reused.
type Store interface {
	Put(ctx context.Context, filename, contentType string, payload io.Reader) (key string, size int64, err error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// New creates a MinIO-backed store and ensures the bucket exists
func New(cfg *config.Config, log *logger.Logger) (Store, error) {
	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.ObjectStore.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.ObjectStore.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	log.Info("object store ready", "endpoint", cfg.ObjectStore.Endpoint, "bucket", cfg.ObjectStore.Bucket)

	return &minioStore{
		client: client,
		bucket: cfg.ObjectStore.Bucket,
		log:    log,
	}, nil
}

// Put stores a payload under a freshly generated key and reports the byte
// count actually read from the payload.
func (s *minioStore) Put(ctx context.Context, filename, contentType string, payload io.Reader) (string, int64, error) {
	data, err := io.ReadAll(payload)
	if err != nil {
		return "", 0, fmt.Errorf("read payload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("assets/%s%s", uuid.New().String(), ext)
	size := int64(len(data))

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"filename": filename},
	})
	if err != nil {
		return "", 0, fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.Debug("object stored", "key", key, "size", size)
	return key, size, nil
}

func (s *minioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	s.log.Debug("object removed", "key", key)
	return nil
}

// PresignedURL returns a time-limited GET URL for a stored payload
func (s *minioStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return u.String(), nil
}
