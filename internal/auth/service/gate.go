package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

// IdentityProvider verifies email/password credentials against the hosted
// identity service.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Principal, error)
	SignOut(ctx context.Context, principal *domain.Principal) error
}

type SessionStore interface {
	Save(ctx context.Context, id string, p *domain.Principal, ttl time.Duration) error
	Load(ctx context.Context, id string) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
}

// Gate decides whether the admin shell or the login view is shown. A session
// is Authenticated exactly while a Principal is stored for it.
type Gate struct {
	provider IdentityProvider
	sessions SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewGate(provider IdentityProvider, sessions SessionStore, ttl time.Duration, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		provider: provider,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger.With("component", "auth_gate"),
		now:      time.Now,
	}
}

// SignIn verifies the credentials and opens a new session. On failure the
// error wraps ErrAuthenticationFailed and carries the provider's message.
func (g *Gate) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	principal, err := g.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		g.logger.WarnContext(ctx, "sign in failed", "email", email, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, err)
	}

	id, err := domain.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	if err := g.sessions.Save(ctx, id, principal, g.ttl); err != nil {
		return nil, err
	}
	g.logger.InfoContext(ctx, "signed in", "uid", principal.UID)

	return &domain.Session{
		ID:        id,
		Principal: principal,
		ExpiresAt: g.now().Add(g.ttl).UTC(),
	}, nil
}

// SignOut ends the session. Provider and store failures are logged only; the
// session is treated as signed out either way.
func (g *Gate) SignOut(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	principal, err := g.sessions.Load(ctx, sessionID)
	switch {
	case err == nil:
		if err := g.provider.SignOut(ctx, principal); err != nil {
			g.logger.WarnContext(ctx, "error signing out", "uid", principal.UID, "error", err)
		}
	case !errors.Is(err, domain.ErrSessionNotFound):
		g.logger.WarnContext(ctx, "error loading session for sign out", "error", err)
	}

	if err := g.sessions.Delete(ctx, sessionID); err != nil {
		g.logger.WarnContext(ctx, "error deleting session", "error", err)
	}
}

// Principal returns the signed-in identity for sessionID, if any.
func (g *Gate) Principal(ctx context.Context, sessionID string) (*domain.Principal, bool) {
	if sessionID == "" {
		return nil, false
	}
	principal, err := g.sessions.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			g.logger.ErrorContext(ctx, "error loading session", "error", err)
		}
		return nil, false
	}
	return principal, true
}

func (g *Gate) State(ctx context.Context, sessionID string) domain.State {
	if _, ok := g.Principal(ctx, sessionID); ok {
		return domain.StateAuthenticated
	}
	return domain.StateUnauthenticated
}
