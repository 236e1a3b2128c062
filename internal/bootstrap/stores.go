package bootstrap

import (
	"fmt"
	"strings"

	"github.com/portfolio-admin/admin-backend/config"
	"github.com/portfolio-admin/admin-backend/internal/content/repository"
	"github.com/portfolio-admin/admin-backend/internal/content/storage"
)

// memoryBlobsPath is where the in-memory blob store is served, relative to
// PUBLIC_BASE_URL.
const memoryBlobsPath = "/blobs"

func OpenDocumentStore(cfg *config.Config, fb *FirebaseClients) (repository.DocumentStore, error) {
	switch cfg.Backends.Documents {
	case config.DocumentsFirestore:
		if fb == nil || fb.Firestore == nil {
			return nil, fmt.Errorf("firestore client is not initialized")
		}
		return repository.NewFirestoreStore(fb.Firestore), nil
	case config.DocumentsMemory:
		return repository.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown DOCUMENT_BACKEND %q", cfg.Backends.Documents)
	}
}

// OpenBlobStore returns the configured blob store. For the memory backend the
// concrete store is returned as well so its objects can be served over HTTP.
func OpenBlobStore(cfg *config.Config, fb *FirebaseClients) (storage.BlobStore, *storage.MemoryStore, error) {
	switch cfg.Backends.Blobs {
	case config.BlobsFirebase:
		if fb == nil || fb.Bucket == nil {
			return nil, nil, fmt.Errorf("firebase storage bucket is not initialized")
		}
		return storage.NewFirebaseBucket(fb.Bucket, cfg.Firebase.StorageBucket), nil, nil
	case config.BlobsS3:
		s3, err := storage.NewS3Store(storage.S3Config{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			Bucket:        cfg.S3.Bucket,
			UseSSL:        cfg.S3.UseSSL,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	case config.BlobsMemory:
		mem := storage.NewMemoryStore(strings.TrimRight(cfg.Server.PublicBaseURL, "/") + memoryBlobsPath)
		return mem, mem, nil
	default:
		return nil, nil, fmt.Errorf("unknown BLOB_BACKEND %q", cfg.Backends.Blobs)
	}
}
