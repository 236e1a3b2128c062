package repository

import "context"

// Document is one stored document: its assigned id and raw field values.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the hosted document database as seen by a collection.
// Replace and Delete return domain.ErrNotFound for unknown ids.
type DocumentStore interface {
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
	InsertDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
	ReplaceDocument(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}
