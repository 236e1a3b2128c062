package config

import (
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Identity IdentityConfig
	Backends BackendConfig
	S3       S3Config
	Redis    RedisConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
	// PublicBaseURL is the origin browsers reach this server on. Uploads held
	// by the memory blob backend are linked under it.
	PublicBaseURL string
	CORSOrigins   []string
	SessionTTL    time.Duration
	CookieSecure  bool
}

// FirebaseConfig holds the hosted backend identifiers. None of these are
// compiled in; they come from the environment or a local .env file.
type FirebaseConfig struct {
	ProjectID       string
	APIKey          string
	StorageBucket   string
	AppID           string
	AuthDomain      string
	CredentialsPath string
}

// LogValue reports the project identifiers. The API key and credentials path
// are left out.
func (f FirebaseConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", f.ProjectID),
		slog.String("app_id", f.AppID),
		slog.String("auth_domain", f.AuthDomain),
		slog.String("storage_bucket", f.StorageBucket),
	)
}

type IdentityConfig struct {
	Backend           string
	AdminEmail        string
	AdminPasswordHash string
}

type BackendConfig struct {
	Documents string
	Blobs     string
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

const (
	IdentityFirebase = "firebase"
	IdentityStatic   = "static"

	DocumentsFirestore = "firestore"
	DocumentsMemory    = "memory"

	BlobsFirebase = "firebase"
	BlobsS3       = "s3"
	BlobsMemory   = "memory"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := getEnv("PORT", "8080")

	cfg := &Config{
		Server: ServerConfig{
			Port:          port,
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
			CORSOrigins:   getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			APIKey:          getEnv("FIREBASE_API_KEY", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
			AppID:           getEnv("FIREBASE_APP_ID", ""),
			AuthDomain:      getEnv("FIREBASE_AUTH_DOMAIN", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Identity: IdentityConfig{
			Backend:           getEnv("IDENTITY_BACKEND", IdentityFirebase),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Backends: BackendConfig{
			Documents: getEnv("DOCUMENT_BACKEND", DocumentsFirestore),
			Blobs:     getEnv("BLOB_BACKEND", BlobsFirebase),
		},
		S3: S3Config{
			Endpoint:      getEnv("S3_ENDPOINT", ""),
			Region:        getEnv("S3_REGION", "us-east-1"),
			AccessKey:     getEnv("S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("S3_SECRET_KEY", ""),
			Bucket:        getEnv("S3_BUCKET", ""),
			UseSSL:        getEnvAsBool("S3_USE_SSL", true),
			PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	switch c.Identity.Backend {
	case IdentityFirebase:
		if c.Firebase.APIKey == "" {
			return fmt.Errorf("FIREBASE_API_KEY is required for the firebase identity backend")
		}
	case IdentityStatic:
		if c.Identity.AdminEmail == "" || c.Identity.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required for the static identity backend")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_BACKEND %q", c.Identity.Backend)
	}

	switch c.Backends.Documents {
	case DocumentsFirestore, DocumentsMemory:
	default:
		return fmt.Errorf("unknown DOCUMENT_BACKEND %q", c.Backends.Documents)
	}

	switch c.Backends.Blobs {
	case BlobsFirebase:
		if c.Firebase.StorageBucket == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required for the firebase blob backend")
		}
	case BlobsS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("S3_ENDPOINT and S3_BUCKET are required for the s3 blob backend")
		}
	case BlobsMemory:
		u, err := url.Parse(c.Server.PublicBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be an absolute http(s) URL for the memory blob backend")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.Backends.Blobs)
	}

	if c.NeedsFirebase() && c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	return nil
}

// NeedsFirebase reports whether any configured backend talks to the Firebase
// Admin SDK.
func (c *Config) NeedsFirebase() bool {
	return c.Identity.Backend == IdentityFirebase ||
		c.Backends.Documents == DocumentsFirestore ||
		c.Backends.Blobs == BlobsFirebase
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	out := make([]string, 0, 4)
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
