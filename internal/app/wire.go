package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/manna/internal/cache"
	"horse.fit/manna/internal/catalog"
	"horse.fit/manna/internal/chat"
	"horse.fit/manna/internal/config"
	"horse.fit/manna/internal/langdetect"
	"horse.fit/manna/internal/provider"
	"horse.fit/manna/internal/resolver"
	"horse.fit/manna/internal/search"
)

// services bundles the wired components shared by the server and the
// read-only CLI commands.
type services struct {
	resolver *resolver.Resolver
	search   *search.Aggregator
	chat     *chat.Selector
	cleanup  func()
}

func buildServices(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*services, error) {
	apiBible := provider.NewAPIBible(cfg.APIBibleBaseURL, cfg.APIBibleKey)

	chapterCache, cleanup, err := buildCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	contentResolver := resolver.New(resolver.Sources{
		Bolls:    provider.NewBolls(cfg.BollsBaseURL),
		APIBible: apiBible,
		GetBible: provider.NewGetBible(cfg.GetBibleBaseURL),
		BibleAPI: provider.NewBibleAPI(cfg.BibleAPIBaseURL),
		BibleOrg: provider.NewBibleOrg(cfg.BibleOrgBaseURL),
	}, chapterCache, resolver.Config{
		ContentTimeout:  cfg.ContentTimeout,
		GetBibleTimeout: cfg.GetBibleTimeout,
		CacheTTL:        cfg.CacheTTL,
	}, logger)

	// Remote search runs against the English api.bible default when a
	// key is configured.
	remoteCode := ""
	if apiBible.Configured() {
		remoteCode = catalog.Resolve(catalog.DefaultLocale, "ASV").Code
	}
	aggregator := search.NewAggregator(contentResolver, apiBible, remoteCode, logger)

	selector := chat.NewSelector(
		[]chat.Completer{
			chat.NewGroq(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel),
			chat.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
			chat.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel),
		},
		chat.NewBibleAPIFetcher(cfg.BibleAPIBaseURL),
		langdetect.DetectLocale,
		chat.SelectorConfig{
			MaxAttempts: cfg.ChatRetryAttempts,
			BaseDelay:   cfg.ChatRetryBaseWait,
			MaxDelay:    cfg.ChatRetryMaxWait,
		},
		logger,
	)

	return &services{
		resolver: contentResolver,
		search:   aggregator,
		chat:     selector,
		cleanup:  cleanup,
	}, nil
}

func buildCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (cache.Cache, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.CacheBackend)) {
	case "none":
		return cache.Noop{}, func() {}, nil
	case "postgres":
		store, err := cache.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open chapter cache store: %w", err)
		}
		return store, func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Warn().Err(closeErr).Msg("close chapter cache store failed")
			}
		}, nil
	default:
		return cache.NewMemory(), func() {}, nil
	}
}
