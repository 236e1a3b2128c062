package middleware

import (
	"context"
	"net/http"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/auth"
	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

// TokenVerifier is satisfied by the Firebase Admin SDK auth client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// PrincipalSource resolves a session id to its principal.
type PrincipalSource interface {
	Principal(ctx context.Context, sessionID string) (*domain.Principal, bool)
}

// Authenticate resolves the caller from the session cookie, or from a Firebase
// ID token in the Authorization header when verifier is set. It never aborts;
// RequireAuth and RequireAuthPage enforce.
func Authenticate(sessions PrincipalSource, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := auth.SessionID(c); id != "" {
			if p, ok := sessions.Principal(c.Request.Context(), id); ok {
				auth.SetPrincipal(c, p)
				c.Next()
				return
			}
		}

		if verifier != nil {
			if token := auth.BearerToken(c); token != "" {
				if decoded, err := verifier.VerifyIDToken(c.Request.Context(), token); err == nil {
					auth.SetPrincipal(c, principalFromToken(decoded, token))
				}
			}
		}

		c.Next()
	}
}

// RequireAuth rejects unauthenticated API calls.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.PrincipalFrom(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not signed in"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthPage sends unauthenticated browsers to the login view.
func RequireAuthPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.PrincipalFrom(c); !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func principalFromToken(t *fbauth.Token, raw string) *domain.Principal {
	p := &domain.Principal{UID: t.UID, IDToken: raw}
	if email, ok := t.Claims["email"].(string); ok {
		p.Email = email
	}
	if t.AuthTime > 0 {
		p.SignedInAt = time.Unix(t.AuthTime, 0).UTC()
	}
	return p
}
