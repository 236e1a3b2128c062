package http

import (
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/service"
)

// maxImageBytes bounds multipart request bodies.
const maxImageBytes = 20 << 20

// Handler bundles the dependencies for one collection's HTTP endpoints.
type Handler[T domain.Entity[T]] struct {
	coll *service.Collection[T]
}

func New[T domain.Entity[T]](coll *service.Collection[T]) *Handler[T] {
	return &Handler[T]{coll: coll}
}
