package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const (
	downloadTokenKey   = "firebaseStorageDownloadTokens"
	firebaseStorageAPI = "https://firebasestorage.googleapis.com/v0/b"
)

var ErrNoDownloadToken = errors.New("object has no download token")

// FirebaseBucket stores uploads in the project's Firebase Storage bucket and
// hands out token-based download URLs, the same ones the Firebase client SDKs
// produce.
type FirebaseBucket struct {
	bucket *gcs.BucketHandle
	name   string
}

func NewFirebaseBucket(bucket *gcs.BucketHandle, name string) *FirebaseBucket {
	return &FirebaseBucket{bucket: bucket, name: name}
}

func (b *FirebaseBucket) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) error {
	w := b.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: uuid.NewString()}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", objectPath, err)
	}
	return nil
}

func (b *FirebaseBucket) PublicURL(ctx context.Context, objectPath string) (string, error) {
	attrs, err := b.bucket.Object(objectPath).Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("read attrs of %s: %w", objectPath, err)
	}

	token, _, _ := strings.Cut(attrs.Metadata[downloadTokenKey], ",")
	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrNoDownloadToken, objectPath)
	}
	return DownloadURL(b.name, objectPath, token), nil
}

// DownloadURL formats a Firebase Storage download URL.
func DownloadURL(bucket, objectPath, token string) string {
	return fmt.Sprintf("%s/%s/o/%s?alt=media&token=%s", firebaseStorageAPI, bucket, escapeObjectPath(objectPath), token)
}
