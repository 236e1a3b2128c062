package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	gomponents "maragu.dev/gomponents"

	"github.com/portfolio-admin/admin-backend/internal/auth"
	authdomain "github.com/portfolio-admin/admin-backend/internal/auth/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/service"
	"github.com/portfolio-admin/admin-backend/internal/form"
)

// maxUploadBytes bounds admin form bodies, image included.
const maxUploadBytes = 20 << 20

// view is what a collection page shows: the list, at most one open form or
// confirmation, and an optional blocking alert.
type view[T any] struct {
	Items    []T
	Form     *form.State
	EditID   string
	DeleteID string
	Alert    string
}

type pageContext struct {
	c         *gin.Context
	Principal *authdomain.Principal
	Path      string
}

// section serves the list, modal form and confirmation routes for one
// collection.
type section[T domain.Entity[T]] struct {
	coll   *service.Collection[T]
	schema *form.Schema
	path   string
	render func(pc pageContext, v view[T]) gomponents.Node
}

func (s *section[T]) label() string {
	return s.coll.Kind().Label
}

func (s *section[T]) page(c *gin.Context, status int, v view[T]) {
	p, _ := auth.PrincipalFrom(c)
	renderHTML(c, status, s.render(pageContext{c: c, Principal: p, Path: s.path}, v))
}

// index re-fetches and renders the list. ?modal=new opens an empty form,
// ?edit=<id> the form filled from the displayed item, ?delete=<id> the
// confirmation.
func (s *section[T]) index(c *gin.Context) {
	v := view[T]{Items: s.coll.Refresh(c.Request.Context())}

	switch {
	case c.Query("modal") == "new":
		v.Form = s.schema.New()
	case c.Query("edit") != "":
		id := c.Query("edit")
		item, ok := s.coll.Lookup(id)
		if !ok {
			v.Alert = fmt.Sprintf("Error updating %s: %s", s.label(), domain.ErrNotFound)
			break
		}
		st := s.schema.New()
		if err := st.Load(item); err != nil {
			v.Alert = fmt.Sprintf("Error updating %s: %s", s.label(), err)
			break
		}
		v.Form = st
		v.EditID = id
	case c.Query("delete") != "":
		v.DeleteID = c.Query("delete")
	}

	s.page(c, http.StatusOK, v)
}

func (s *section[T]) create(c *gin.Context) {
	st, entity, file, done, err := s.bind(c)
	if err != nil {
		s.fail(c, "adding", view[T]{Form: st}, err)
		return
	}
	defer done()

	if _, err := s.coll.Create(c.Request.Context(), entity, file); err != nil {
		s.fail(c, "adding", view[T]{Form: st}, err)
		return
	}
	c.Redirect(http.StatusSeeOther, s.path)
}

func (s *section[T]) update(c *gin.Context) {
	id := c.Param("id")
	st, entity, file, done, err := s.bind(c)
	if err != nil {
		s.fail(c, "updating", view[T]{Form: st, EditID: id}, err)
		return
	}
	defer done()

	if _, err := s.coll.Update(c.Request.Context(), id, entity, file); err != nil {
		s.fail(c, "updating", view[T]{Form: st, EditID: id}, err)
		return
	}
	c.Redirect(http.StatusSeeOther, s.path)
}

// remove deletes only when the confirmation dialog was accepted.
func (s *section[T]) remove(c *gin.Context) {
	confirmed := c.PostForm("confirm") == "yes"
	deleted, err := s.coll.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		s.fail(c, "deleting", view[T]{}, err)
		return
	}
	if !deleted {
		c.Redirect(http.StatusSeeOther, s.path+"?delete="+url.QueryEscape(c.Param("id")))
		return
	}
	c.Redirect(http.StatusSeeOther, s.path)
}

// fail re-renders the current list with the alert, keeping any open form.
func (s *section[T]) fail(c *gin.Context, action string, v view[T], err error) {
	v.Items = s.coll.Snapshot()
	v.Alert = fmt.Sprintf("Error %s %s: %s", action, s.label(), err)
	s.page(c, failureStatus(err), v)
}

// bind reads the submitted form into a draft and an entity, plus the chosen
// image file if any. done releases the file.
func (s *section[T]) bind(c *gin.Context) (*form.State, T, *service.Upload, func(), error) {
	var entity T
	st := s.schema.New()

	values, err := formValues(c)
	if err != nil {
		return st, entity, nil, func() {}, err
	}
	st.Bind(values)
	if err := st.Decode(&entity); err != nil {
		return st, entity, nil, func() {}, err
	}

	file, done, err := imageUpload(c)
	if err != nil {
		return st, entity, nil, func() {}, err
	}
	return st, entity, file, done, nil
}

func formValues(c *gin.Context) (url.Values, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}
	return c.Request.PostForm, nil
}

// imageUpload returns the "upload" file part; an empty file input means no
// upload.
func imageUpload(c *gin.Context) (*service.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("upload")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("invalid image: %w", err)
	}
	if fh.Size == 0 {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("invalid image: %w", err)
	}
	return &service.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func failureStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *section[T]) register(rg *gin.RouterGroup) {
	rg.GET("", s.index)
	rg.POST("", s.create)
	rg.POST("/:id", s.update)
	rg.POST("/:id/delete", s.remove)
}
