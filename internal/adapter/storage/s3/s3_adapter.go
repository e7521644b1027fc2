package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Storage stores portfolio media in a MinIO bucket.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

func NewS3Storage(cfg Config, log logger.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, checkErr := client.BucketExists(context.Background(), cfg.Bucket)
		if checkErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, checkErr)
		}
	}
	log.Infof("S3 storage ready: endpoint=%s bucket=%s", cfg.Endpoint, cfg.Bucket)

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// Upload writes an object under the given key with overwrite-allowed
// semantics.
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Debugf("Uploaded object %s (%d bytes)", key, len(data))
	return nil
}

// Remove deletes a batch of objects in one call. Per-object failures are
// drained and joined so the caller sees every one.
func (s *S3Storage) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []error
	for res := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			failed = append(failed, fmt.Errorf("remove %s: %w", res.ObjectName, res.Err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to remove %d objects from bucket %s: %w", len(failed), s.bucket, errors.Join(failed...))
	}
	return nil
}

// PublicURL resolves a stored key to its publicly addressable URL.
func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}
