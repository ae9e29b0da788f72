package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/saintpdi/tamara-backend/internal/config"
)

type MinIOClient struct {
	client      *minio.Client
	bucket      string
	publicURL   string
	presignHost string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	minioCfg := cfg.MinIO
	client, err := minio.New(minioCfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioCfg.AccessKey, minioCfg.SecretKey, ""),
		Secure: minioCfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, minioCfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, minioCfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Bucket %s created successfully", minioCfg.Bucket)
	}

	return &MinIOClient{
		client:      client,
		bucket:      minioCfg.Bucket,
		publicURL:   minioCfg.PublicURL,
		presignHost: minioCfg.PresignHost,
	}, nil
}

// GetPresignedPutURL issues a short-lived upload URL for video and
// thumbnail objects. Clients upload directly; media bytes never pass
// through the API.
func (m *MinIOClient) GetPresignedPutURL(objectKey string, expiry time.Duration) (string, error) {
	presignedURL, err := m.client.PresignedPutObject(
		context.Background(),
		m.bucket,
		objectKey,
		expiry,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// Replace internal hostname with presign host for browser access
	urlStr := presignedURL.String()
	if m.presignHost != "" && presignedURL.Host != m.presignHost {
		presignedURL.Host = m.presignHost
		urlStr = presignedURL.String()
	}

	return urlStr, nil
}

func (m *MinIOClient) GetPresignedGetURL(objectKey string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.client.PresignedGetObject(
		context.Background(),
		m.bucket,
		objectKey,
		expiry,
		reqParams,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedURL.String(), nil
}

func (m *MinIOClient) ObjectExists(objectKey string) (bool, error) {
	_, err := m.client.StatObject(context.Background(), m.bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinIOClient) DeleteObject(objectKey string) error {
	return m.client.RemoveObject(context.Background(), m.bucket, objectKey, minio.RemoveObjectOptions{})
}

// DeleteByPublicURL removes the object a stored media URL points at.
// URLs outside this deployment's public prefix (external media, demo
// content) are left alone.
func (m *MinIOClient) DeleteByPublicURL(rawURL string) error {
	objectKey, ok := objectKeyFromURL(m.publicURL, rawURL)
	if !ok {
		return nil
	}
	return m.DeleteObject(objectKey)
}

func (m *MinIOClient) GetPublicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s", m.publicURL, objectKey)
}

func objectKeyFromURL(publicBase, rawURL string) (string, bool) {
	prefix := strings.TrimSuffix(publicBase, "/") + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
