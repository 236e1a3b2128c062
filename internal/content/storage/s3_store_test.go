package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of path-style calls the store makes.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]bool
	deny    bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = io.Copy(io.Discard, r.Body)

	if f.deny {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	bucket, object, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodHead && object == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && object == "":
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		f.objects[bucket+"/"+object] = true
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newFakeS3Store(t *testing.T, fake *fakeS3, publicBase string) *S3Store {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(S3Config{
		Endpoint:      strings.TrimPrefix(srv.URL, "http://"),
		AccessKey:     "access",
		SecretKey:     "secret",
		Bucket:        "uploads",
		PublicBaseURL: publicBase,
	})
	require.NoError(t, err)
	return store
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()

	t.Run("requires endpoint and bucket", func(t *testing.T) {
		_, err := NewS3Store(S3Config{Bucket: "uploads"})
		assert.ErrorContains(t, err, "endpoint")
		_, err = NewS3Store(S3Config{Endpoint: "localhost:9000"})
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("creates the bucket on first upload", func(t *testing.T) {
		fake := &fakeS3{buckets: map[string]bool{}, objects: map[string]bool{}}
		store := newFakeS3Store(t, fake, "https://cdn.example.com/uploads")

		err := store.Upload(ctx, "projects/1_shot.png", "image/png", strings.NewReader("png"))
		require.NoError(t, err)
		assert.True(t, fake.buckets["uploads"])
		assert.True(t, fake.objects["uploads/projects/1_shot.png"])

		url, err := store.PublicURL(ctx, "projects/1_shot.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/uploads/projects/1_shot.png", url)
	})

	t.Run("retries the bucket check after a failure", func(t *testing.T) {
		fake := &fakeS3{buckets: map[string]bool{}, objects: map[string]bool{}, deny: true}
		store := newFakeS3Store(t, fake, "")

		err := store.Upload(ctx, "certificates/1_aws.png", "image/png", strings.NewReader("png"))
		require.ErrorContains(t, err, "ensure bucket")

		fake.mu.Lock()
		fake.deny = false
		fake.mu.Unlock()

		require.NoError(t, store.Upload(ctx, "certificates/2_aws.png", "image/png", strings.NewReader("png")))
		assert.True(t, fake.buckets["uploads"])
		assert.True(t, fake.objects["uploads/certificates/2_aws.png"])
	})

	t.Run("ping", func(t *testing.T) {
		fake := &fakeS3{buckets: map[string]bool{}, objects: map[string]bool{}}
		store := newFakeS3Store(t, fake, "")
		require.NoError(t, store.Ping(ctx))

		fake.mu.Lock()
		fake.deny = true
		fake.mu.Unlock()
		assert.ErrorContains(t, store.Ping(ctx), "uploads")
	})
}
