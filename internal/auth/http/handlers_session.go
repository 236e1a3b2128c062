package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/auth"
	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

// Login signs in with email and password and sets the session cookie. The
// session id is also returned for clients that do not keep cookies.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	sess, err := h.gate.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to start session"})
		return
	}

	auth.SetSessionCookie(c, sess, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
}

// Logout always succeeds; the cookie is cleared even if the provider call fails.
func (h *Handler) Logout(c *gin.Context) {
	h.gate.SignOut(c.Request.Context(), auth.SessionID(c))
	auth.ClearSessionCookie(c, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me reports the gate state for the caller.
func (h *Handler) Me(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": true, "state": domain.StateUnauthenticated})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": domain.StateAuthenticated, "principal": p})
}
