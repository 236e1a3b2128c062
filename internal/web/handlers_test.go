package web

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-admin/admin-backend/internal/auth"
	"github.com/portfolio-admin/admin-backend/internal/auth/identity"
	"github.com/portfolio-admin/admin-backend/internal/auth/middleware"
	authrepo "github.com/portfolio-admin/admin-backend/internal/auth/repository"
	authservice "github.com/portfolio-admin/admin-backend/internal/auth/service"
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/content/repository"
	"github.com/portfolio-admin/admin-backend/internal/content/service"
	"github.com/portfolio-admin/admin-backend/internal/content/storage"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "correct horse"
	testCSRF     = "test-csrf-token"
)

type shell struct {
	router       *gin.Engine
	gate         *authservice.Gate
	docs         *repository.MemoryStore
	blobs        *storage.MemoryStore
	projects     *service.Collection[domain.Project]
	certificates *service.Collection[domain.Certificate]
}

func setupShell(t *testing.T) *shell {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	provider, err := identity.NewStaticProvider(testEmail, string(hash))
	require.NoError(t, err)
	gate := authservice.NewGate(provider, authrepo.NewMemorySessionRepository(), time.Hour, logger)

	docs := repository.NewMemoryStore()
	blobs := storage.NewMemoryStore("/blobs")
	clock := service.WithClock(func() time.Time { return time.UnixMilli(1700000000000) })
	projects := service.NewCollection[domain.Project](domain.ProjectKind, docs, blobs, logger, clock)
	certificates := service.NewCollection[domain.Certificate](domain.CertificateKind, docs, blobs, logger, clock)

	r := gin.New()
	r.Use(middleware.Authenticate(gate, nil))
	r.GET("/blobs/*path", BlobHandler(blobs))
	New(gate, projects, certificates, false).Register(r, middleware.RequireAuthPage("/login"))

	return &shell{router: r, gate: gate, docs: docs, blobs: blobs, projects: projects, certificates: certificates}
}

func (s *shell) session(t *testing.T) *http.Cookie {
	t.Helper()
	sess, err := s.gate.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: sess.ID}
}

func (s *shell) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func postForm(path string, values url.Values) *http.Request {
	values.Set("csrf_token", testCSRF)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type field struct{ name, value string }

func postMultipart(t *testing.T, path string, fields []field, fileName string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("csrf_token", testCSRF))
	for _, f := range fields {
		require.NoError(t, w.WriteField(f.name, f.value))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("upload", fileName)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func listProjects(t *testing.T, s *shell) []domain.Project {
	t.Helper()
	items, err := s.projects.List(context.Background())
	require.NoError(t, err)
	return items
}

func TestLogin(t *testing.T) {
	s := setupShell(t)

	t.Run("admin requires a session", func(t *testing.T) {
		rr := s.do(get("/admin/projects"))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("login page", func(t *testing.T) {
		rr := s.do(get("/login"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Admin Login")
		assert.NotContains(t, rr.Body.String(), "<dialog")
	})

	t.Run("wrong password shows alert", func(t *testing.T) {
		rr := s.do(postForm("/login", url.Values{"email": {testEmail}, "password": {"nope"}}))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Login failed: ")
		assert.Contains(t, rr.Body.String(), "INVALID_LOGIN_CREDENTIALS")
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("missing csrf token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a&password=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := s.do(req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("success then logout", func(t *testing.T) {
		rr := s.do(postForm("/login", url.Values{"email": {testEmail}, "password": {testPassword}}))
		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/admin/projects", rr.Header().Get("Location"))

		var session *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == auth.SessionCookie {
				session = c
			}
		}
		require.NotNil(t, session)

		rr = s.do(get("/login"), session)
		assert.Equal(t, http.StatusSeeOther, rr.Code)

		rr = s.do(get("/admin"), session)
		assert.Equal(t, "/admin/projects", rr.Header().Get("Location"))

		rr = s.do(get("/admin/projects"), session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Signed in as "+testEmail)

		rr = s.do(postForm("/logout", url.Values{}), session)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))

		rr = s.do(get("/admin/projects"), session)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})
}

func TestProjectsView(t *testing.T) {
	s := setupShell(t)
	session := s.session(t)

	t.Run("list without modal", func(t *testing.T) {
		rr := s.do(get("/admin/projects"), session)
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Add Project")
		assert.NotContains(t, body, `class="modal-backdrop"`)
	})

	t.Run("new opens empty form", func(t *testing.T) {
		rr := s.do(get("/admin/projects?modal=new"), session)
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `class="modal-backdrop"`)
		assert.Contains(t, body, `action="/admin/projects"`)
		assert.Contains(t, body, `enctype="multipart/form-data"`)
	})
}

func TestCreateProject(t *testing.T) {
	s := setupShell(t)
	session := s.session(t)

	t.Run("with image", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects", []field{
			{"title", "Portfolio"},
			{"description", "My site"},
			{"github", "https://github.com/me/site"},
			{"techStack", "Go"},
			{"techStack", "React"},
		}, "shot.png", []byte("png-bytes")), session)
		require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
		assert.Equal(t, "/admin/projects", rr.Header().Get("Location"))

		items := listProjects(t, s)
		require.Len(t, items, 1)
		assert.Equal(t, "/blobs/projects/1700000000000_shot.png", items[0].ImgLink)
		assert.Equal(t, []string{"Go", "React"}, items[0].TechStack)

		rr = s.do(get(items[0].ImgLink))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "png-bytes", rr.Body.String())

		rr = s.do(get("/admin/projects"), session)
		assert.Contains(t, rr.Body.String(), "Portfolio")
	})

	t.Run("missing title keeps the form open with an alert", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects", []field{
			{"description", "kept value"},
		}, "", nil), session)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		body := rr.Body.String()
		assert.Contains(t, body, "Error adding project: ")
		assert.Contains(t, body, "kept value")
		assert.Contains(t, body, `class="modal-backdrop"`)
		assert.Len(t, listProjects(t, s), 1)
	})
}

func TestProjectDraft(t *testing.T) {
	s := setupShell(t)
	session := s.session(t)

	t.Run("add tech entry", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects/draft", []field{
			{"title", "Draft"},
			{"techStack", "Go"},
			{"tech", "React"},
			{"op", "add"},
		}, "", nil), session)
		require.Equal(t, http.StatusOK, rr.Code)

		body := rr.Body.String()
		assert.Contains(t, body, `name="techStack" value="Go"`)
		assert.Contains(t, body, `name="techStack" value="React"`)
		assert.Contains(t, body, `value="Draft"`)
		assert.Empty(t, listProjects(t, s))
	})

	t.Run("empty tech entry is ignored", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects/draft", []field{
			{"techStack", "Go"},
			{"tech", ""},
			{"op", "add"},
		}, "", nil), session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, strings.Count(rr.Body.String(), `name="techStack"`))
	})

	t.Run("remove tech entry", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects/draft", []field{
			{"techStack", "Go"},
			{"techStack", "React"},
			{"remove", "0"},
		}, "", nil), session)
		require.Equal(t, http.StatusOK, rr.Code)

		body := rr.Body.String()
		assert.NotContains(t, body, `name="techStack" value="Go"`)
		assert.Contains(t, body, `name="techStack" value="React"`)
	})

	t.Run("edit id is carried through", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects/draft", []field{
			{"id", "p1"},
			{"tech", "Go"},
			{"op", "add"},
		}, "", nil), session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `action="/admin/projects/p1"`)
		assert.Contains(t, rr.Body.String(), "Update Project")
	})
}

func TestEditAndDeleteProject(t *testing.T) {
	s := setupShell(t)
	session := s.session(t)
	ctx := context.Background()

	p, err := s.projects.Create(ctx, domain.Project{
		Title:       "Old",
		Description: "d",
		ImgLink:     "https://img.example/old.png",
		TechStack:   []string{"Go"},
	}, nil)
	require.NoError(t, err)

	t.Run("edit form is filled from the list", func(t *testing.T) {
		rr := s.do(get("/admin/projects?edit="+p.ID), session)
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Edit Project")
		assert.Contains(t, body, `value="Old"`)
		assert.Contains(t, body, `name="imgLink" value="https://img.example/old.png"`)
	})

	t.Run("unknown edit id shows an alert", func(t *testing.T) {
		rr := s.do(get("/admin/projects?edit=missing"), session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error updating project: ")
	})

	t.Run("update without file keeps the image", func(t *testing.T) {
		rr := s.do(postMultipart(t, "/admin/projects/"+p.ID, []field{
			{"title", "New"},
			{"description", "d"},
			{"imgLink", "https://img.example/old.png"},
			{"techStack", "Go"},
		}, "", nil), session)
		require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())

		items := listProjects(t, s)
		require.Len(t, items, 1)
		assert.Equal(t, "New", items[0].Title)
		assert.Equal(t, "https://img.example/old.png", items[0].ImgLink)
	})

	t.Run("delete asks first", func(t *testing.T) {
		rr := s.do(get("/admin/projects?delete="+p.ID), session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Are you sure you want to delete this project?")

		rr = s.do(postForm("/admin/projects/"+p.ID+"/delete", url.Values{}), session)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/admin/projects?delete="+p.ID, rr.Header().Get("Location"))
		assert.Len(t, listProjects(t, s), 1)
	})

	t.Run("confirmed delete", func(t *testing.T) {
		rr := s.do(postForm("/admin/projects/"+p.ID+"/delete", url.Values{"confirm": {"yes"}}), session)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Empty(t, listProjects(t, s))
	})

	t.Run("delete failure shows an alert", func(t *testing.T) {
		rr := s.do(postForm("/admin/projects/missing/delete", url.Values{"confirm": {"yes"}}), session)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error deleting project: ")
	})
}

func TestCertificates(t *testing.T) {
	s := setupShell(t)
	session := s.session(t)

	rr := s.do(postMultipart(t, "/admin/certificates", []field{
		{"name", "CKA"},
		{"image", ""},
	}, "cka.jpg", []byte("jpg-bytes")), session)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())

	items, err := s.certificates.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "CKA", items[0].Name)
	assert.Equal(t, "/blobs/certificates/1700000000000_cka.jpg", items[0].Image)

	rr = s.do(get("/admin/certificates"), session)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Add Certificate")
	assert.Contains(t, body, "CKA")
	assert.Contains(t, body, `href="/admin/certificates" class="app-nav-link active"`)

	rr = s.do(postMultipart(t, "/admin/certificates", []field{{"name", ""}}, "", nil), session)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error adding certificate: ")
}

func TestBlobHandler(t *testing.T) {
	s := setupShell(t)
	rr := s.do(get("/blobs/projects/missing.png"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
