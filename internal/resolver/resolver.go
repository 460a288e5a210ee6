// Package resolver orchestrates the chapter fallback chain across the
// upstream content providers.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"horse.fit/manna/internal/bible"
	"horse.fit/manna/internal/cache"
	"horse.fit/manna/internal/catalog"
	"horse.fit/manna/internal/language"
	"horse.fit/manna/internal/provider"
	"horse.fit/manna/internal/resilience"
)

var (
	// ErrAllProvidersExhausted is returned when every source in the
	// chain failed or returned nothing.
	ErrAllProvidersExhausted = errors.New("no provider could serve the chapter")

	// ErrVerseNotFound is returned when the chapter resolved but the
	// requested verse range matched no verses.
	ErrVerseNotFound = errors.New("requested verses not found in chapter")
)

// Config controls per-attempt timeouts and cache lifetime.
type Config struct {
	ContentTimeout  time.Duration
	GetBibleTimeout time.Duration
	CacheTTL        time.Duration
}

func DefaultConfig() Config {
	return Config{
		ContentTimeout:  10 * time.Second,
		GetBibleTimeout: 15 * time.Second,
		CacheTTL:        time.Hour,
	}
}

func (c Config) withDefaults() Config {
	out := c
	if out.ContentTimeout <= 0 {
		out.ContentTimeout = 10 * time.Second
	}
	if out.GetBibleTimeout <= 0 {
		out.GetBibleTimeout = 15 * time.Second
	}
	return out
}

// Sources holds the content adapters the chain walks. Any entry may be
// nil, in which case its slot is skipped.
type Sources struct {
	Bolls    provider.ContentSource
	APIBible provider.ContentSource
	GetBible provider.ContentSource
	BibleAPI provider.ContentSource
	BibleOrg provider.ContentSource
}

type credentialed interface {
	Configured() bool
}

// Resolver walks the fallback chain sequentially and returns the first
// successful chapter. Sources are never queried in parallel and a
// success is never cross-checked against another provider.
type Resolver struct {
	sources  Sources
	cache    cache.Cache
	cfg      Config
	logger   zerolog.Logger
	breakers map[string]*resilience.CircuitBreaker
}

func New(sources Sources, chapterCache cache.Cache, cfg Config, logger zerolog.Logger) *Resolver {
	if chapterCache == nil {
		chapterCache = cache.Noop{}
	}

	breakers := make(map[string]*resilience.CircuitBreaker)
	for _, source := range []provider.ContentSource{
		sources.Bolls, sources.APIBible, sources.GetBible, sources.BibleAPI, sources.BibleOrg,
	} {
		if source == nil {
			continue
		}
		breakerCfg := resilience.DefaultBreakerConfig(source.Name())
		breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("content provider breaker state changed")
		}
		breakers[source.Name()] = resilience.NewCircuitBreaker(breakerCfg)
	}

	return &Resolver{
		sources:  sources,
		cache:    chapterCache,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		breakers: breakers,
	}
}

type attempt struct {
	source  provider.ContentSource
	code    string
	timeout time.Duration
}

// ResolveChapter resolves one chapter through the fallback chain.
// The translationID may be empty, unknown, or any registered code; it
// is normalized through the catalog before the chain starts.
func (r *Resolver) ResolveChapter(ctx context.Context, book string, chapterNum int, translationID, lang string) (*bible.Chapter, error) {
	if r == nil {
		return nil, fmt.Errorf("resolver is not initialized")
	}

	canonical, ok := bible.CanonicalName(book)
	if !ok {
		return nil, fmt.Errorf("%w: unknown book %q", bible.ErrUnresolvableReference, book)
	}
	if chapterNum < 1 || chapterNum > bible.ChapterCount(canonical) {
		return nil, fmt.Errorf("%w: %s has no chapter %d", bible.ErrUnresolvableReference, canonical, chapterNum)
	}

	locale := language.NormalizeOrDefault(lang, catalog.DefaultLocale)
	descriptor := catalog.Resolve(locale, translationID)
	ref := bible.Reference{Book: canonical, Chapter: chapterNum}

	key := cache.Key(locale, descriptor.Code, canonical, chapterNum)
	if cached, hit := r.cache.Get(ctx, key); hit {
		return cached, nil
	}

	chapter, err := r.walkChain(ctx, ref, descriptor, locale)
	if err != nil {
		return nil, err
	}

	if chapter.Language == "" {
		chapter.Language = locale
	}
	if setErr := r.cache.Set(ctx, key, chapter, r.cfg.CacheTTL); setErr != nil {
		r.logger.Warn().Err(setErr).Str("key", key).Msg("chapter cache write failed")
	}
	return chapter, nil
}

// ResolveVerses resolves the chapter containing a reference and slices
// it down to the requested verse range. A reference without verses
// yields the whole chapter.
func (r *Resolver) ResolveVerses(ctx context.Context, ref bible.Reference, translationID, lang string) (*bible.Chapter, error) {
	expanded := bible.ExpandSingleChapter(ref)

	chapter, err := r.ResolveChapter(ctx, expanded.Book, expanded.Chapter, translationID, lang)
	if err != nil {
		return nil, err
	}
	if expanded.VerseStart == 0 {
		return chapter, nil
	}

	selected := make([]bible.Verse, 0, len(chapter.Verses))
	for _, verse := range chapter.Verses {
		if expanded.Contains(verse.Number) {
			selected = append(selected, verse)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVerseNotFound, expanded.String())
	}

	sliced := *chapter
	sliced.Verses = selected
	return &sliced, nil
}

// walkChain runs the fallback sequence and returns the first success.
// Order: primary (bolls or api.bible), getbible, then for English
// bible-api.com with the requested translation and labs.bible.org, and
// finally bible-api.com KJV regardless of the requested language.
func (r *Resolver) walkChain(ctx context.Context, ref bible.Reference, descriptor catalog.Descriptor, locale string) (*bible.Chapter, error) {
	attempts := make([]attempt, 0, 5)

	switch descriptor.Namespace {
	case catalog.NamespaceBolls:
		if r.sources.Bolls != nil {
			attempts = append(attempts, attempt{r.sources.Bolls, descriptor.Code, r.cfg.ContentTimeout})
		}
	case catalog.NamespaceAPIBible:
		if r.sources.APIBible != nil && sourceConfigured(r.sources.APIBible) {
			attempts = append(attempts, attempt{r.sources.APIBible, descriptor.Code, r.cfg.ContentTimeout})
		}
	}

	if r.sources.GetBible != nil {
		attempts = append(attempts, attempt{r.sources.GetBible, catalog.GetBibleDefault(locale).Code, r.cfg.GetBibleTimeout})
	}

	if locale == "en" {
		if r.sources.BibleAPI != nil {
			attempts = append(attempts, attempt{r.sources.BibleAPI, descriptor.Abbreviation, r.cfg.ContentTimeout})
		}
		if r.sources.BibleOrg != nil {
			attempts = append(attempts, attempt{r.sources.BibleOrg, "", r.cfg.ContentTimeout})
		}
	}

	if r.sources.BibleAPI != nil {
		attempts = append(attempts, attempt{r.sources.BibleAPI, "kjv", r.cfg.ContentTimeout})
	}

	for _, current := range attempts {
		chapter, err := r.tryAttempt(ctx, current, ref)
		if err == nil {
			return chapter, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn().
			Err(err).
			Str("provider", current.source.Name()).
			Str("book", ref.Book).
			Int("chapter", ref.Chapter).
			Msg("content provider attempt failed")
	}

	return nil, fmt.Errorf("%w: %s %d (%s)", ErrAllProvidersExhausted, ref.Book, ref.Chapter, locale)
}

func (r *Resolver) tryAttempt(ctx context.Context, current attempt, ref bible.Reference) (*bible.Chapter, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, current.timeout)
	defer cancel()

	breaker := r.breakers[current.source.Name()]
	if breaker == nil {
		return current.source.FetchChapter(attemptCtx, ref, current.code)
	}

	result, err := breaker.Execute(func() (any, error) {
		return current.source.FetchChapter(attemptCtx, ref, current.code)
	})
	if err != nil {
		return nil, err
	}
	return result.(*bible.Chapter), nil
}

func sourceConfigured(source provider.ContentSource) bool {
	c, ok := source.(credentialed)
	if !ok {
		return true
	}
	return c.Configured()
}
