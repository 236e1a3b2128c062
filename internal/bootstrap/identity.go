package bootstrap

import (
	"context"
	"fmt"

	"github.com/portfolio-admin/admin-backend/config"
	"github.com/portfolio-admin/admin-backend/internal/auth/identity"
	"github.com/portfolio-admin/admin-backend/internal/auth/middleware"
	"github.com/portfolio-admin/admin-backend/internal/auth/service"
)

// OpenIdentity returns the sign-in provider and, for the Firebase backend, the
// ID token verifier used for Bearer requests. The verifier is nil otherwise.
func OpenIdentity(ctx context.Context, cfg *config.Config, fb *FirebaseClients) (service.IdentityProvider, middleware.TokenVerifier, error) {
	switch cfg.Identity.Backend {
	case config.IdentityFirebase:
		if fb == nil || fb.Auth == nil {
			return nil, nil, fmt.Errorf("firebase auth client is not initialized")
		}
		provider, err := identity.NewFirebaseProvider(ctx, cfg.Firebase.APIKey, fb.Auth)
		if err != nil {
			return nil, nil, err
		}
		return provider, fb.Auth, nil
	case config.IdentityStatic:
		provider, err := identity.NewStaticProvider(cfg.Identity.AdminEmail, cfg.Identity.AdminPasswordHash)
		if err != nil {
			return nil, nil, err
		}
		return provider, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown IDENTITY_BACKEND %q", cfg.Identity.Backend)
	}
}
