package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8080"`

	// Scripture sources. Only api.bible requires a credential; the
	// other endpoints are open and overridable for testing.
	APIBibleKey     string        `envconfig:"API_BIBLE_KEY" default:""`
	BollsBaseURL    string        `envconfig:"BOLLS_BASE_URL" default:""`
	APIBibleBaseURL string        `envconfig:"API_BIBLE_BASE_URL" default:""`
	GetBibleBaseURL string        `envconfig:"GETBIBLE_BASE_URL" default:""`
	BibleAPIBaseURL string        `envconfig:"BIBLE_API_BASE_URL" default:""`
	BibleOrgBaseURL string        `envconfig:"BIBLE_ORG_BASE_URL" default:""`
	ContentTimeout  time.Duration `envconfig:"CONTENT_TIMEOUT" default:"10s"`
	GetBibleTimeout time.Duration `envconfig:"GETBIBLE_TIMEOUT" default:"15s"`

	// Chapter cache. Backend "postgres" needs DATABASE_URL, "memory"
	// keeps chapters in process, "none" disables caching.
	CacheBackend string        `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	DatabaseURL  string        `envconfig:"DATABASE_URL" default:""`
	DBMaxConns   int32         `envconfig:"MANNA_DB_MAX_CONNS" default:"8"`

	// Chat completion providers, tried in Groq, OpenAI, Anthropic order.
	GroqAPIKey        string        `envconfig:"GROQ_API_KEY" default:""`
	GroqBaseURL       string        `envconfig:"GROQ_BASE_URL" default:""`
	GroqModel         string        `envconfig:"GROQ_MODEL" default:""`
	OpenAIAPIKey      string        `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL     string        `envconfig:"OPENAI_BASE_URL" default:""`
	OpenAIModel       string        `envconfig:"OPENAI_MODEL" default:""`
	AnthropicAPIKey   string        `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicBaseURL  string        `envconfig:"ANTHROPIC_BASE_URL" default:""`
	AnthropicModel    string        `envconfig:"ANTHROPIC_MODEL" default:""`
	ChatRetryAttempts int           `envconfig:"CHAT_RETRY_ATTEMPTS" default:"3"`
	ChatRetryBaseWait time.Duration `envconfig:"CHAT_RETRY_BASE_WAIT" default:"1s"`
	ChatRetryMaxWait  time.Duration `envconfig:"CHAT_RETRY_MAX_WAIT" default:"4s"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	switch strings.ToLower(strings.TrimSpace(c.CacheBackend)) {
	case "memory", "none":
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory, postgres or none")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("MANNA_DB_MAX_CONNS must be >= 1")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL cannot be negative")
	}
	if c.ContentTimeout < time.Second {
		return fmt.Errorf("CONTENT_TIMEOUT must be at least 1s")
	}
	if c.GetBibleTimeout < time.Second {
		return fmt.Errorf("GETBIBLE_TIMEOUT must be at least 1s")
	}
	if c.ChatRetryAttempts < 1 {
		return fmt.Errorf("CHAT_RETRY_ATTEMPTS must be >= 1")
	}
	return nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
