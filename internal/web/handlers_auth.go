package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/auth"
)

func (h *Handler) LoginPage(c *gin.Context) {
	if _, ok := auth.PrincipalFrom(c); ok {
		c.Redirect(http.StatusSeeOther, "/admin/projects")
		return
	}
	renderHTML(c, http.StatusOK, loginPage(c, "", ""))
}

// LoginSubmit signs in and enters the shell. A failure shows the provider's
// message in an alert; the user resubmits manually.
func (h *Handler) LoginSubmit(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	sess, err := h.gate.SignIn(c.Request.Context(), email, password)
	if err != nil {
		renderHTML(c, http.StatusUnauthorized, loginPage(c, email, "Login failed: "+err.Error()))
		return
	}

	auth.SetSessionCookie(c, sess, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (h *Handler) Logout(c *gin.Context) {
	h.gate.SignOut(c.Request.Context(), auth.SessionID(c))
	auth.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, "/login")
}
