package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"johan/johan/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg config.Config) (*MinIOClient, error) {
	// Use insecure for local (no HTTPS)
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

// UploadAttachment stores one chat attachment and returns its object key.
func (m *MinIOClient) UploadAttachment(ctx context.Context, chatID uuid.UUID, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := path.Join("attachments", chatID.String(), fmt.Sprintf("%s-%s", uuid.New().String()[:8], filename))
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}
	return key, nil
}

// PresignAttachment returns a short-lived download URL for an object key.
func (m *MinIOClient) PresignAttachment(ctx context.Context, key string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, 15*time.Minute, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign attachment: %w", err)
	}
	return u.String(), nil
}
