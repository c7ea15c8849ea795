package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Valkey   ValkeyConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ValkeyConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable URL prefix for uploaded
	// objects, e.g. https://cdn.example.com. Object paths are appended.
	PublicBaseURL string
}

type AuthConfig struct {
	// OIDCEnabled turns on Bearer-token identity resolution against the
	// external identity provider.
	OIDCEnabled  bool
	IssuerURL    string
	PublicIssuer string
	Audience     string

	// HookSecret is the shared secret the identity provider sends to the
	// post-registration webhook.
	HookSecret string

	// SessionCookie is the cookie name carrying the opaque session token.
	SessionCookie string
	// SessionTTL bounds both the Valkey session entry and the cookie
	// Max-Age.
	SessionTTL time.Duration
	// CookieSecure marks the session cookie Secure. Off only for local
	// plain-HTTP development.
	CookieSecure bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECS", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECS", 60)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "plume"),
			Password:    getEnv("DB_PASSWORD", "plume"),
			Name:        getEnv("DB_NAME", "plume"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 25)),
			MinConns:    int32(getEnvInt("DB_MIN_CONNS", 5)),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Valkey: ValkeyConfig{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "plume"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "plume123"),
			Bucket:        getEnv("MINIO_BUCKET", "plume-uploads"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		Auth: AuthConfig{
			OIDCEnabled:   getEnvBool("AUTH_OIDC_ENABLED", false),
			IssuerURL:     getEnv("AUTH_ISSUER_URL", ""),
			PublicIssuer:  getEnv("AUTH_PUBLIC_ISSUER", ""),
			Audience:      getEnv("AUTH_AUDIENCE", "plume"),
			HookSecret:    getEnv("AUTH_HOOK_SECRET", ""),
			SessionCookie: getEnv("AUTH_SESSION_COOKIE", "plume_session"),
			SessionTTL:    getEnvDuration("AUTH_SESSION_TTL", 144*time.Hour),
			CookieSecure:  getEnvBool("AUTH_COOKIE_SECURE", true),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
