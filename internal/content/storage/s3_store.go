package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// S3Store keeps uploads in an S3 compatible bucket. Objects are expected to
// be publicly readable through PublicBaseURL (or the endpoint itself).
type S3Store struct {
	client     *minio.Client
	bucketName string
	region     string
	baseURL    string

	mu      sync.Mutex
	checked bool
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client:     client,
		bucketName: bucket,
		region:     region,
		baseURL:    publicBaseURL(cfg.PublicBaseURL, endpoint, bucket, cfg.UseSSL),
	}, nil
}

func publicBaseURL(configured, endpoint, bucket string, useSSL bool) string {
	if base := strings.TrimRight(strings.TrimSpace(configured), "/"); base != "" {
		return base
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
}

// ensureBucket creates the bucket if needed. Only success is remembered, so
// a failed check is retried by the next upload.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checked {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.checked = true
	return nil
}

func (s *S3Store) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload %s: %w", objectPath, err)
	}
	_, err = s.client.PutObject(ctx, s.bucketName, objectPath, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", objectPath, err)
	}
	return nil
}

func (s *S3Store) PublicURL(_ context.Context, objectPath string) (string, error) {
	return s.baseURL + "/" + escapeSegments(objectPath), nil
}

// Ping reports whether the bucket endpoint answers. A missing bucket is not an
// error; it is created on first upload.
func (s *S3Store) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucketName); err != nil {
		return fmt.Errorf("s3 bucket %s: %w", s.bucketName, err)
	}
	return nil
}
