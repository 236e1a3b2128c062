package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/repository"
	"github.com/portfolio-admin/admin-backend/internal/content/storage"
)

// Upload is an image file chosen alongside a create or update.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// Collection is the CRUD facade over one document collection. Every
// successful write is followed by a full re-fetch; the last successfully
// fetched list is kept as the snapshot views render.
type Collection[T domain.Entity[T]] struct {
	kind   domain.Kind
	docs   repository.DocumentStore
	blobs  storage.BlobStore
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot []T
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for upload object names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewCollection[T domain.Entity[T]](kind domain.Kind, docs repository.DocumentStore, blobs storage.BlobStore, logger *slog.Logger, opts ...Option) *Collection[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{
		kind:     kind,
		docs:     docs,
		blobs:    blobs,
		logger:   logger.With("collection", kind.Collection),
		now:      o.now,
		snapshot: []T{},
	}
}

func (c *Collection[T]) Kind() domain.Kind {
	return c.kind
}

// List fetches the whole collection. No filtering, sorting or paging.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.docs.ListDocuments(ctx, c.kind.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		item, err := decode[T](d.Fields)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s/%s: %w", domain.ErrFetchFailed, c.kind.Collection, d.ID, err)
		}
		out = append(out, item.WithID(d.ID))
	}
	return out, nil
}

// Refresh re-fetches the collection. On failure the error is only logged and
// the previous snapshot is returned unchanged.
func (c *Collection[T]) Refresh(ctx context.Context) []T {
	items, err := c.List(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "error fetching collection", "error", err)
		return c.Snapshot()
	}

	c.mu.Lock()
	c.snapshot = items
	c.mu.Unlock()
	return cloneItems(items)
}

// Snapshot is the last successfully fetched list, empty before the first.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.snapshot)
}

// Lookup finds an entity in the snapshot, the way an edit form is opened
// from the displayed grid.
func (c *Collection[T]) Lookup(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.snapshot {
		if item.Identifier() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create uploads file (if any), stores the entity with the resolved image URL
// and re-fetches. An upload failure aborts before anything is written.
func (c *Collection[T]) Create(ctx context.Context, entity T, file *Upload) (T, error) {
	if err := entity.Validate(); err != nil {
		return entity, err
	}

	entity, err := c.resolveImage(ctx, entity, file)
	if err != nil {
		return entity, err
	}

	fields, err := encode(entity)
	if err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}

	id, err := c.docs.InsertDocument(ctx, c.kind.Collection, fields)
	if err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	c.logger.InfoContext(ctx, "document created", "id", id)

	c.Refresh(ctx)
	return entity.WithID(id), nil
}

// Update fully replaces the document id. Without a file the entity keeps
// whatever image URL it carries.
func (c *Collection[T]) Update(ctx context.Context, id string, entity T, file *Upload) (T, error) {
	entity = entity.WithID(id)
	if id == "" {
		return entity, fmt.Errorf("%w: %w", domain.ErrWriteFailed, domain.ErrNotFound)
	}
	if err := entity.Validate(); err != nil {
		return entity, err
	}

	entity, err := c.resolveImage(ctx, entity, file)
	if err != nil {
		return entity, err
	}

	fields, err := encode(entity)
	if err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}

	if err := c.docs.ReplaceDocument(ctx, c.kind.Collection, id, fields); err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	c.logger.InfoContext(ctx, "document updated", "id", id)

	c.Refresh(ctx)
	return entity, nil
}

// Delete removes the document only when confirmed; otherwise nothing is
// called and false is returned.
func (c *Collection[T]) Delete(ctx context.Context, id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	if err := c.docs.DeleteDocument(ctx, c.kind.Collection, id); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	c.logger.InfoContext(ctx, "document deleted", "id", id)

	c.Refresh(ctx)
	return true, nil
}

func (c *Collection[T]) resolveImage(ctx context.Context, entity T, file *Upload) (T, error) {
	if file == nil || file.Body == nil {
		return entity, nil
	}

	objectPath := storage.ObjectPath(c.kind.Collection, c.now(), file.FileName)
	if err := c.blobs.Upload(ctx, objectPath, file.ContentType, file.Body); err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	url, err := c.blobs.PublicURL(ctx, objectPath)
	if err != nil {
		return entity, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	c.logger.InfoContext(ctx, "image uploaded", "path", objectPath)

	return entity.WithImageURL(url), nil
}

func decode[T any](fields map[string]any) (T, error) {
	var item T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &item,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return item, err
	}
	if err := dec.Decode(fields); err != nil {
		return item, err
	}
	return item, nil
}

func encode[T any](entity T) (map[string]any, error) {
	fields := map[string]any{}
	if err := mapstructure.Decode(entity, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		if list, ok := v.([]string); ok && list == nil {
			fields[k] = []string{}
		}
	}
	return fields, nil
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
