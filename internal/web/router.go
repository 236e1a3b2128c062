package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register attaches the shell routes. requireAuth guards everything under
// /admin.
func (h *Handler) Register(r gin.IRouter, requireAuth gin.HandlerFunc) {
	ui := r.Group("")
	ui.Use(h.EnsureCSRFToken(), limitBody(maxUploadBytes), h.RequireCSRF())

	ui.GET("/", redirectTo("/admin/projects"))
	ui.GET("/login", h.LoginPage)
	ui.POST("/login", h.LoginSubmit)
	ui.POST("/logout", h.Logout)

	admin := ui.Group("/admin", requireAuth)
	admin.GET("", redirectTo("/admin/projects"))

	projects := admin.Group("/projects")
	projects.POST("/draft", h.ProjectDraft)
	h.projects.register(projects)

	h.certificates.register(admin.Group("/certificates"))
}

func redirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, location)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
