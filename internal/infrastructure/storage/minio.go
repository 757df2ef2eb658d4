package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/smart-insights/pkg/config"
)

// MinIOClient archives raw uploads in a MinIO (S3-compatible) bucket
type MinIOClient struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
		now:    time.Now,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when missing. Archived uploads stay private.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// Archive stores a raw upload under uploads/<category>/<date>/<uuid>-<name> and returns the object key
func (m *MinIOClient) Archive(ctx context.Context, category, filename string, data []byte) (string, error) {
	objectName := ObjectKey(category, filename, m.now().UTC(), uuid.New())
	if err := m.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentTypeFor(filename)); err != nil {
		return "", err
	}
	return objectName, nil
}

// ObjectKey builds the archive key of an upload
func ObjectKey(category, filename string, at time.Time, id uuid.UUID) string {
	name := sanitizeName(filename)
	return path.Join("uploads", category, at.Format("2006-01-02"), fmt.Sprintf("%s-%s", id.String(), name))
}

func sanitizeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
