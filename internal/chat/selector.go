package chat

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/manna/internal/resilience"
)

// LocaleDetector infers a locale from free-form text. Empty result
// means inconclusive.
type LocaleDetector func(text string) string

// SelectorConfig tunes the retry behavior for rate-limited providers.
type SelectorConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    4 * time.Second,
	}
}

// Selector walks the completion providers in priority order and
// returns the first stream that starts. Rate-limit failures retry the
// same provider with exponential backoff before moving on; any other
// failure moves on immediately.
type Selector struct {
	providers []Completer
	fetcher   VerseFetcher
	detect    LocaleDetector
	cfg       SelectorConfig
	logger    zerolog.Logger
}

func NewSelector(providers []Completer, fetcher VerseFetcher, detect LocaleDetector, cfg SelectorConfig, logger zerolog.Logger) *Selector {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultSelectorConfig()
	}
	return &Selector{
		providers: providers,
		fetcher:   fetcher,
		detect:    detect,
		cfg:       cfg,
		logger:    logger,
	}
}

// Complete runs one chat turn. The returned reader streams plain-text
// deltas; the provider name is reported for logging.
func (s *Selector) Complete(ctx context.Context, messages []Message, lang string) (io.ReadCloser, string, error) {
	if s == nil {
		return nil, "", fmt.Errorf("chat selector is not initialized")
	}
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages are required")
	}

	userQuery := lastUserContent(messages)
	locale := strings.TrimSpace(strings.ToLower(lang))
	if locale == "" && s.detect != nil {
		locale = s.detect(userQuery)
	}
	if locale == "" {
		locale = "en"
	}

	system := SystemPrompt(locale) + groundingContext(ctx, s.fetcher, userQuery)

	retryCfg := resilience.RetryConfig{
		MaxAttempts: s.cfg.MaxAttempts,
		BaseDelay:   s.cfg.BaseDelay,
		MaxDelay:    s.cfg.MaxDelay,
		RetryIf:     IsRateLimited,
	}

	var lastErr error
	configured := 0
	for _, candidate := range s.providers {
		if candidate == nil || !candidate.Configured() {
			continue
		}
		configured++

		executor := resilience.NewExecutor[io.ReadCloser](retryCfg, nil)
		stream, err := executor.Execute(ctx, func() (io.ReadCloser, error) {
			return candidate.Complete(ctx, system, messages)
		})
		if err == nil {
			s.logger.Info().Str("provider", candidate.Name()).Str("lang", locale).Msg("chat stream started")
			return stream, candidate.Name(), nil
		}

		lastErr = err
		s.logger.Warn().Err(err).Str("provider", candidate.Name()).Msg("completion provider failed")
	}

	if configured == 0 {
		return nil, "", ErrNoProvider
	}
	if IsRateLimited(lastErr) {
		return nil, "", fmt.Errorf("%w: %v", ErrRateLimited, lastErr)
	}
	if IsAuthFailure(lastErr) {
		return nil, "", fmt.Errorf("%w: %v", ErrMisconfigured, lastErr)
	}
	return nil, "", fmt.Errorf("all completion providers failed: %w", lastErr)
}

func lastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return messages[len(messages)-1].Content
}
