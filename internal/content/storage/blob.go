package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

// BlobStore is the hosted blob storage as seen by a collection.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, body io.Reader) error
	PublicURL(ctx context.Context, objectPath string) (string, error)
}

// ObjectPath builds "{collection}/{unixMillis}_{fileName}". Only the base
// name of fileName is kept.
func ObjectPath(collection string, at time.Time, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	return fmt.Sprintf("%s/%d_%s", collection, at.UnixMilli(), name)
}

// escapeObjectPath escapes a whole object path as a single URL segment,
// slashes included.
func escapeObjectPath(objectPath string) string {
	return strings.ReplaceAll(url.QueryEscape(objectPath), "+", "%20")
}

// escapeSegments escapes each path segment but keeps the slashes.
func escapeSegments(objectPath string) string {
	parts := strings.Split(objectPath, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
