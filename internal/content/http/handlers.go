package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/service"
)

// list re-fetches the collection. A failed fetch is not reported; the last
// good list is returned instead.
func (h *Handler[T]) list(c *gin.Context) {
	items := h.coll.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, h.coll.Kind().Collection: items})
}

func (h *Handler[T]) create(c *gin.Context) {
	entity, file, closeFile, err := h.bind(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer closeFile()

	created, err := h.coll.Create(c.Request.Context(), entity, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, h.coll.Kind().Label: created})
}

func (h *Handler[T]) update(c *gin.Context) {
	id := c.Param("id")

	entity, file, closeFile, err := h.bind(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer closeFile()

	updated, err := h.coll.Update(c.Request.Context(), id, entity, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, h.coll.Kind().Label: updated})
}

// delete requires ?confirm=true, the API's equivalent of the confirmation
// dialog.
func (h *Handler[T]) delete(c *gin.Context) {
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	deleted, err := h.coll.Delete(c.Request.Context(), id, confirmed)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"ok":    false,
			"error": fmt.Sprintf("deleting a %s requires confirm=true", h.coll.Kind().Label),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bind reads the entity from a JSON body, or from a multipart form with a
// "data" JSON part and an optional "image" file.
func (h *Handler[T]) bind(c *gin.Context) (T, *service.Upload, func(), error) {
	var entity T
	noop := func() {}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&entity); err != nil {
			return entity, nil, noop, fmt.Errorf("invalid body")
		}
		return entity, nil, noop, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	if err := json.Unmarshal([]byte(c.PostForm("data")), &entity); err != nil {
		return entity, nil, noop, fmt.Errorf("invalid data part")
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return entity, nil, noop, nil
	}
	if err != nil {
		return entity, nil, noop, fmt.Errorf("invalid image part: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return entity, nil, noop, fmt.Errorf("invalid image part: %w", err)
	}

	return entity, &service.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func (h *Handler[T]) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
