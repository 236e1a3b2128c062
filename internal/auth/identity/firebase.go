// Package identity contains the IdentityProvider implementations used by the
// authentication gate.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

// TokenRevoker is satisfied by the Firebase Admin SDK auth client.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseProvider signs users in with email and password through the
// Identity Toolkit API (the endpoint behind signInWithEmailAndPassword) and
// signs them out by revoking their refresh tokens.
type FirebaseProvider struct {
	toolkit *identitytoolkit.Service
	revoker TokenRevoker
	now     func() time.Time
}

func NewFirebaseProvider(ctx context.Context, apiKey string, revoker TokenRevoker, opts ...option.ClientOption) (*FirebaseProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("firebase api key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}

	return &FirebaseProvider{toolkit: svc, revoker: revoker, now: time.Now}, nil
}

func (p *FirebaseProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Principal, error) {
	resp, err := p.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, providerError(err)
	}

	return &domain.Principal{
		UID:        resp.LocalId,
		Email:      resp.Email,
		IDToken:    resp.IdToken,
		SignedInAt: p.now().UTC(),
	}, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, principal *domain.Principal) error {
	if p.revoker == nil || principal == nil || principal.UID == "" {
		return nil
	}
	return p.revoker.RevokeRefreshTokens(ctx, principal.UID)
}

// providerError keeps only the provider's own message, e.g.
// "INVALID_LOGIN_CREDENTIALS".
func providerError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		if gerr.Message == domain.ErrInvalidCredentials.Error() {
			return domain.ErrInvalidCredentials
		}
		return errors.New(gerr.Message)
	}
	return err
}
