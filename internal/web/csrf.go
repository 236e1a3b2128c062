package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	csrfCookieName = "admin_csrf"
	ctxCSRFToken   = "csrf_token"
)

// EnsureCSRFToken issues the double-submit token cookie on first visit.
func (h *Handler) EnsureCSRFToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(csrfCookieName)
		if token == "" {
			token = randomToken(32)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(csrfCookieName, token, 0, "/", "", h.cookieSecure, true)
		}
		c.Set(ctxCSRFToken, token)
		c.Next()
	}
}

// RequireCSRF rejects state-changing requests whose form token does not match
// the cookie.
func (h *Handler) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookieToken, _ := c.Cookie(csrfCookieName)
		if cookieToken == "" {
			renderHTML(c, http.StatusForbidden, errorPage("CSRF Validation Failed", "Missing CSRF token cookie."))
			c.Abort()
			return
		}

		formToken := strings.TrimSpace(c.GetHeader("X-CSRF-Token"))
		if formToken == "" {
			formToken = strings.TrimSpace(c.PostForm("csrf_token"))
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) != 1 {
			renderHTML(c, http.StatusForbidden, errorPage("CSRF Validation Failed", "Invalid or missing CSRF token."))
			c.Abort()
			return
		}

		c.Next()
	}
}

func csrfField(c *gin.Context) Node {
	return Input(Type("hidden"), Name("csrf_token"), Value(c.GetString(ctxCSRFToken)))
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
