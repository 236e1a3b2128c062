package bootstrap

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/portfolio-admin/admin-backend/internal/api/http"
	"github.com/portfolio-admin/admin-backend/internal/api/http/middleware"
	authhttp "github.com/portfolio-admin/admin-backend/internal/auth/http"
	authmw "github.com/portfolio-admin/admin-backend/internal/auth/middleware"
	"github.com/portfolio-admin/admin-backend/internal/auth/service"
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	contenthttp "github.com/portfolio-admin/admin-backend/internal/content/http"
	contentservice "github.com/portfolio-admin/admin-backend/internal/content/service"
	"github.com/portfolio-admin/admin-backend/internal/content/storage"
	"github.com/portfolio-admin/admin-backend/internal/web"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	Logger       *slog.Logger
	CORSOrigins  []string
	CookieSecure bool

	Gate         *service.Gate
	Sessions     httpapi.Pinger
	Blobs        storage.BlobStore
	Verifier     authmw.TokenVerifier
	Projects     *contentservice.Collection[domain.Project]
	Certificates *contentservice.Collection[domain.Certificate]
	// MemoryBlobs is set only when uploads are kept in process.
	MemoryBlobs *storage.MemoryStore
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(dep.Logger))
	if len(dep.CORSOrigins) > 0 {
		r.Use(apiCORS(dep.CORSOrigins))
	}

	checks := []httpapi.HealthOption{httpapi.WithCheck("sessions", dep.Sessions)}
	if p, ok := dep.Blobs.(httpapi.Pinger); ok {
		checks = append(checks, httpapi.WithCheck("blobs", p))
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, checks...)
	healthHandler.RegisterRoutes(r)

	r.Use(authmw.Authenticate(dep.Gate, dep.Verifier))

	if dep.MemoryBlobs != nil {
		r.GET(memoryBlobsPath+"/*path", web.BlobHandler(dep.MemoryBlobs))
	}

	api := r.Group("/api/v1")

	authHandler := authhttp.New(dep.Gate, dep.CookieSecure)
	authHandler.Register(api.Group("/auth"))

	content := api.Group("", authmw.RequireAuth())
	contenthttp.New(dep.Projects).Register(content.Group("/projects"))
	contenthttp.New(dep.Certificates).Register(content.Group("/certificates"))

	webHandler := web.New(dep.Gate, dep.Projects, dep.Certificates, dep.CookieSecure)
	webHandler.Register(r, authmw.RequireAuthPage("/login"))

	return r
}

// apiCORS applies CORS to /api/ only; the HTML shell is same-origin. It is
// installed globally so unrouted preflight requests are still answered.
func apiCORS(origins []string) gin.HandlerFunc {
	handler := cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			handler(c)
		}
	}
}
