// Package storage publishes exported workflow artifacts to object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/promptops/prompt-evolution/pkg/config"
)

// ArtifactStore wraps MinIO operations for exported Markdown artifacts.
type ArtifactStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewArtifactStore creates a MinIO-backed artifact store and ensures the
// bucket exists with a public read policy so shared links work.
func NewArtifactStore(cfg *config.StorageConfig) (*ArtifactStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &ArtifactStore{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	if err := store.ensureBucketWithPolicy(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return store, nil
}

// ensureBucketWithPolicy ensures bucket exists and has public read policy
func (s *ArtifactStore) ensureBucketWithPolicy(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// PublishMarkdown uploads a Markdown artifact and returns a presigned URL
// valid for seven days.
func (s *ArtifactStore) PublishMarkdown(ctx context.Context, objectName, content string) (string, error) {
	reader := bytes.NewReader([]byte(content))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/markdown",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}
	return s.artifactURL(ctx, objectName, 7*24*time.Hour)
}

// artifactURL builds a presigned URL, rewriting the endpoint to the public
// URL when one is configured (MinIO behind a reverse proxy).
func (s *ArtifactStore) artifactURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	if s.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host)
		if bucketPos < len(urlStr) {
			return s.publicURL + urlStr[bucketPos:], nil
		}
	}
	return url.String(), nil
}

// ListArtifacts lists published artifacts under a prefix.
func (s *ArtifactStore) ListArtifacts(ctx context.Context, prefix string) ([]string, error) {
	var files []string
	objectCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}
	return files, nil
}
