package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/portfolio-admin/admin-backend/config"
)

// FirebaseClients holds the Admin SDK clients the configured backends need.
// Clients for unused backends are nil.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
	Bucket    *gcs.BucketHandle
}

// InitFirebase initializes the Admin SDK from FIREBASE_CREDENTIALS_PATH, or
// from Application Default Credentials when no file is configured.
func InitFirebase(ctx context.Context, cfg *config.Config) (*FirebaseClients, error) {
	opts, err := credentialOptions(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.Firebase.ProjectID,
		StorageBucket: cfg.Firebase.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fb := &FirebaseClients{App: app}

	if cfg.Identity.Backend == config.IdentityFirebase {
		if fb.Auth, err = app.Auth(ctx); err != nil {
			return nil, fmt.Errorf("failed to get Auth client: %w", err)
		}
	}

	if cfg.Backends.Documents == config.DocumentsFirestore {
		if fb.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("failed to get Firestore client: %w", err)
		}
	}

	if cfg.Backends.Blobs == config.BlobsFirebase {
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Storage client: %w", err)
		}
		if fb.Bucket, err = client.Bucket(cfg.Firebase.StorageBucket); err != nil {
			return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.Firebase.StorageBucket, err)
		}
	}

	return fb, nil
}

func (fb *FirebaseClients) Close() error {
	if fb == nil || fb.Firestore == nil {
		return nil
	}
	return fb.Firestore.Close()
}

func credentialOptions(ctx context.Context, credentialsPath string) ([]option.ClientOption, error) {
	if credentialsPath != "" {
		return []option.ClientOption{option.WithCredentialsFile(credentialsPath)}, nil
	}

	creds, err := google.FindDefaultCredentials(ctx,
		"https://www.googleapis.com/auth/cloud-platform",
		"https://www.googleapis.com/auth/firebase",
		"https://www.googleapis.com/auth/userinfo.email",
	)
	if err != nil {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is not set and no default credentials were found: %w", err)
	}
	if creds.JSON != nil {
		return []option.ClientOption{option.WithCredentialsJSON(creds.JSON)}, nil
	}
	// Metadata-server credentials; the SDK discovers them itself.
	return nil, nil
}
