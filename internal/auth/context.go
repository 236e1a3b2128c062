// Package auth ties the authentication gate to gin: the session cookie and
// the signed-in principal stored on the request context.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

const (
	CtxPrincipal = "principal"

	SessionCookie = "admin_session"
)

// SetPrincipal stores the signed-in principal for the rest of the request.
func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(CtxPrincipal, p)
}

// PrincipalFrom returns the principal set by the authentication middleware.
func PrincipalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}

// SessionID reads the session id from the cookie, falling back to a
// "Bearer sess_..." Authorization header for API clients.
func SessionID(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	if token := BearerToken(c); strings.HasPrefix(token, "sess_") {
		return token
	}
	return ""
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func SetSessionCookie(c *gin.Context, sess *domain.Session, secure bool) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
