package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/content/storage"
)

// BlobHandler serves uploads held by the in-memory blob store, mounted at
// /blobs/*path when no hosted bucket is configured.
func BlobHandler(store *storage.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		objectPath := strings.TrimPrefix(c.Param("path"), "/")
		blob, ok := store.Open(objectPath)
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}

		contentType := blob.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(blob.Data)
		}
		c.Data(http.StatusOK, contentType, blob.Data)
	}
}
