package infra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/campuskit/course-file-service/config"
	"github.com/campuskit/course-file-service/slots"
)

// MinioClient is the thin object-store wrapper. All course-file artifacts
// live in one bucket, namespaced by course-file name as a folder prefix.
// The admin client is kept solely for the health probe.
type MinioClient struct {
	Admin    *madmin.AdminClient
	Client   *minio.Client
	Bucket   string
	Endpoint string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}
	if cfg.Minio.AccessKey == "" || cfg.Minio.SecretKey == "" {
		panic("MinIO credentials are not configured")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	madminClient, err := madmin.New(endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	client := &MinioClient{
		Admin:    madminClient,
		Client:   minioClient,
		Bucket:   cfg.Minio.Bucket,
		Endpoint: endpoint,
	}

	if err := client.EnsureBucket(context.Background()); err != nil {
		panic(fmt.Sprintf("Failed to ensure bucket %q: %v", cfg.Minio.Bucket, err))
	}

	return client
}

// EnsureBucket creates the course-files bucket if it doesn't exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Put writes one object, overwriting any previous version of the key.
func (m *MinioClient) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// RemoveByPrefix deletes every object whose key starts with prefix.
func (m *MinioClient) RemoveByPrefix(ctx context.Context, prefix string) error {
	objectCh := m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	objectsToDelete := make(chan minio.ObjectInfo)
	go func() {
		defer close(objectsToDelete)
		for obj := range objectCh {
			if obj.Err != nil {
				continue
			}
			objectsToDelete <- obj
		}
	}()

	errorCh := m.Client.RemoveObjects(ctx, m.Bucket, objectsToDelete, minio.RemoveObjectsOptions{})
	for err := range errorCh {
		if err.Err != nil {
			return fmt.Errorf("failed to remove object %s: %w", err.ObjectName, err.Err)
		}
	}
	return nil
}

// EnsureFolder writes the zero-byte marker object that provisions a
// course-file's storage namespace.
func (m *MinioClient) EnsureFolder(ctx context.Context, courseFileName string) error {
	key := slots.FolderKey(courseFileName)
	_, err := m.Client.PutObject(ctx, m.Bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to create folder marker %s: %w", key, err)
	}
	return nil
}

// PresignGet issues a time-limited GET URL for one object.
func (m *MinioClient) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	signed, err := m.Client.PresignedGetObject(ctx, m.Bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return signed.String(), nil
}

// Healthy probes the storage backend through the admin API.
func (m *MinioClient) Healthy(ctx context.Context) error {
	if _, err := m.Admin.ServerInfo(ctx); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}
