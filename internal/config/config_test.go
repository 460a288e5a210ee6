package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Environment:       "local",
		LogLevel:          "info",
		Host:              "127.0.0.1",
		Port:              8080,
		ContentTimeout:    10 * time.Second,
		GetBibleTimeout:   15 * time.Second,
		CacheBackend:      "memory",
		CacheTTL:          time.Hour,
		DBMaxConns:        8,
		ChatRetryAttempts: 3,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidatePostgresRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CacheBackend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}

	cfg.DatabaseURL = "postgres://localhost/manna"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownCacheBackend(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CacheBackend = "redis"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "CACHE_BACKEND") {
		t.Fatalf("expected cache backend error, got %v", err)
	}
}

func TestValidateRejectsShortTimeouts(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.ContentTimeout = 100 * time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for sub-second content timeout")
	}
}

func TestAddr(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Fatalf("Addr = %q", got)
	}
}

func TestCORSAllowedOriginsList(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CORSAllowedOrigins = " https://a.example , https://b.example,,https://a.example "
	got := cfg.CORSAllowedOriginsList()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
}
