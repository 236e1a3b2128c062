package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", SessionTTL: time.Hour},
		Firebase: FirebaseConfig{ProjectID: "demo", APIKey: "key", StorageBucket: "demo.appspot.com"},
		Identity: IdentityConfig{Backend: IdentityFirebase},
		Backends: BackendConfig{Documents: DocumentsFirestore, Blobs: BlobsFirebase},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts firebase defaults", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("requires api key for firebase identity", func(t *testing.T) {
		cfg := validConfig()
		cfg.Firebase.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "FIREBASE_API_KEY")
	})

	t.Run("static identity needs admin credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Identity.Backend = IdentityStatic
		assert.ErrorContains(t, cfg.Validate(), "ADMIN_EMAIL")

		cfg.Identity.AdminEmail = "admin@example.com"
		cfg.Identity.AdminPasswordHash = "$2a$10$abc"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("memory backends do not need firebase", func(t *testing.T) {
		cfg := &Config{
			Server:   ServerConfig{Port: "8080", PublicBaseURL: "http://localhost:8080", SessionTTL: time.Hour},
			Identity: IdentityConfig{Backend: IdentityStatic, AdminEmail: "a@b.c", AdminPasswordHash: "h"},
			Backends: BackendConfig{Documents: DocumentsMemory, Blobs: BlobsMemory},
		}
		require.NoError(t, cfg.Validate())
		assert.False(t, cfg.NeedsFirebase())
	})

	t.Run("memory blobs need an absolute public base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backends.Blobs = BlobsMemory
		for _, base := range []string{"", "/blobs", "localhost:8080", "ftp://host"} {
			cfg.Server.PublicBaseURL = base
			assert.ErrorContains(t, cfg.Validate(), "PUBLIC_BASE_URL", base)
		}

		cfg.Server.PublicBaseURL = "https://admin.example.com"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("s3 blobs need endpoint and bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backends.Blobs = BlobsS3
		assert.ErrorContains(t, cfg.Validate(), "S3_ENDPOINT")
	})

	t.Run("rejects unknown backends", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backends.Documents = "mongo"
		assert.ErrorContains(t, cfg.Validate(), "DOCUMENT_BACKEND")
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_SLICE", " https://a.example , ,https://b.example")
	t.Setenv("TEST_BOOL", "not-a-bool")
	t.Setenv("TEST_DURATION", "90m")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.True(t, getEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, 90*time.Minute, getEnvAsDuration("TEST_DURATION", time.Hour))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET_KEY", "fallback"))
}

func TestFirebaseConfigLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("firebase initialized", "firebase", FirebaseConfig{
		ProjectID:       "demo",
		APIKey:          "web-api-key",
		AppID:           "1:123:web:abc",
		AuthDomain:      "demo.firebaseapp.com",
		CredentialsPath: "/secrets/sa.json",
	})

	out := buf.String()
	assert.Contains(t, out, "firebase.project_id=demo")
	assert.Contains(t, out, "firebase.app_id=1:123:web:abc")
	assert.Contains(t, out, "firebase.auth_domain=demo.firebaseapp.com")
	assert.NotContains(t, out, "web-api-key")
	assert.NotContains(t, out, "/secrets/sa.json")
}
