package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
)

// newEmulatorStore connects to the Firestore emulator named by
// FIRESTORE_EMULATOR_HOST and returns a store plus a collection name unique
// to this run.
func newEmulatorStore(t *testing.T) (*FirestoreStore, string) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "demo-portfolio-admin")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewFirestoreStore(client), fmt.Sprintf("projects_%d", time.Now().UnixNano())
}

func TestFirestoreStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store, collection := newEmulatorStore(t)

	id, err := store.InsertDocument(ctx, collection, map[string]any{
		"title":     "Portfolio",
		"techStack": []string{"Go", "Firebase"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	t.Run("lists inserted documents with their ids", func(t *testing.T) {
		docs, err := store.ListDocuments(ctx, collection)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
		assert.Equal(t, "Portfolio", docs[0].Fields["title"])
		assert.Equal(t, []interface{}{"Go", "Firebase"}, docs[0].Fields["techStack"])
	})

	t.Run("replace overwrites all fields", func(t *testing.T) {
		require.NoError(t, store.ReplaceDocument(ctx, collection, id, map[string]any{"description": "d"}))

		docs, err := store.ListDocuments(ctx, collection)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.NotContains(t, docs[0].Fields, "title")
		assert.Equal(t, "d", docs[0].Fields["description"])
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		assert.ErrorIs(t, store.ReplaceDocument(ctx, collection, "missing", map[string]any{"title": "x"}), domain.ErrNotFound)
		assert.ErrorIs(t, store.DeleteDocument(ctx, collection, "missing"), domain.ErrNotFound)

		docs, err := store.ListDocuments(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("delete removes the document", func(t *testing.T) {
		require.NoError(t, store.DeleteDocument(ctx, collection, id))

		docs, err := store.ListDocuments(ctx, collection)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}
