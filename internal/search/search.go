// Package search aggregates verse search over the content providers.
// It has no full-text index: reference-shaped queries resolve directly
// and keyword queries scan a curated candidate set.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/manna/internal/bible"
	"horse.fit/manna/internal/provider"
)

const DefaultLimit = 20

// ChapterResolver is the slice of the resolver the aggregator needs.
type ChapterResolver interface {
	ResolveVerses(ctx context.Context, ref bible.Reference, translationID, lang string) (*bible.Chapter, error)
}

// RemoteSearcher is the alternate full-text path, served by API.Bible
// when a key is configured.
type RemoteSearcher interface {
	Search(ctx context.Context, code, query string, limit int) ([]provider.SearchResult, error)
	Configured() bool
}

// VerseResult is one search hit.
type VerseResult struct {
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
	Testament string `json:"testament"`
}

// Result carries the hits plus testament and per-book counts computed
// over the unfiltered set.
type Result struct {
	Results    []VerseResult  `json:"results"`
	TotalCount int            `json:"totalCount"`
	OTCount    int            `json:"otCount"`
	NTCount    int            `json:"ntCount"`
	BookCounts map[string]int `json:"bookCounts"`
}

// Aggregator searches scripture through the resolver with an optional
// remote alternate path.
type Aggregator struct {
	resolver ChapterResolver
	remote   RemoteSearcher
	// remoteCode is the API.Bible bible ID the alternate path queries.
	remoteCode string
	logger     zerolog.Logger
}

func NewAggregator(resolver ChapterResolver, remote RemoteSearcher, remoteCode string, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		resolver:   resolver,
		remote:     remote,
		remoteCode: remoteCode,
		logger:     logger,
	}
}

// Search runs one query. Reference-shaped queries ("John 3:16",
// "Romans 8") resolve directly; anything else is treated as a keyword.
func (a *Aggregator) Search(ctx context.Context, query, translationID, lang string, limit int) (*Result, error) {
	if a == nil || a.resolver == nil {
		return nil, fmt.Errorf("search aggregator is not initialized")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var hits []VerseResult
	if ref, err := bible.ParseReference(query); err == nil {
		hits = a.resolveHits(ctx, ref, translationID, lang, limit, "")
	} else {
		hits = a.keywordSearch(ctx, query, translationID, lang, limit)
	}

	if len(hits) == 0 && a.remote != nil && a.remote.Configured() && a.remoteCode != "" {
		hits = a.remoteSearch(ctx, query, limit)
	}

	return buildResult(hits), nil
}

// keywordSearch scans the candidate passages for the keyword and stops
// once the limit is reached. Failed candidate fetches are skipped.
func (a *Aggregator) keywordSearch(ctx context.Context, query, translationID, lang string, limit int) []VerseResult {
	needle := strings.ToLower(query)
	hits := make([]VerseResult, 0, limit)

	for _, raw := range candidateReferences(needle) {
		if len(hits) >= limit {
			break
		}
		ref, err := bible.ParseReference(raw)
		if err != nil {
			continue
		}
		remaining := limit - len(hits)
		hits = append(hits, a.resolveHits(ctx, ref, translationID, lang, remaining, needle)...)
	}
	return hits
}

// resolveHits resolves one reference and wraps its verses as results,
// optionally keeping only verses containing the needle.
func (a *Aggregator) resolveHits(ctx context.Context, ref bible.Reference, translationID, lang string, limit int, needle string) []VerseResult {
	chapter, err := a.resolver.ResolveVerses(ctx, ref, translationID, lang)
	if err != nil {
		a.logger.Debug().Err(err).Str("reference", ref.String()).Msg("search candidate skipped")
		return nil
	}

	hits := make([]VerseResult, 0, limit)
	for _, verse := range chapter.Verses {
		if len(hits) >= limit {
			break
		}
		if needle != "" && !strings.Contains(strings.ToLower(verse.Text), needle) {
			continue
		}
		hits = append(hits, VerseResult{
			Book:      chapter.Book,
			Chapter:   chapter.Chapter,
			Verse:     verse.Number,
			Text:      verse.Text,
			Reference: fmt.Sprintf("%s %d:%d", chapter.Book, chapter.Chapter, verse.Number),
			Testament: bible.Testament(chapter.Book),
		})
	}
	return hits
}

// remoteSearch queries the API.Bible full-text endpoint and keeps the
// hits whose references parse against the canon.
func (a *Aggregator) remoteSearch(ctx context.Context, query string, limit int) []VerseResult {
	remote, err := a.remote.Search(ctx, a.remoteCode, query, limit)
	if err != nil {
		a.logger.Warn().Err(err).Msg("remote search fallback failed")
		return nil
	}

	hits := make([]VerseResult, 0, len(remote))
	for _, entry := range remote {
		ref, err := bible.ParseReference(entry.Reference)
		if err != nil {
			continue
		}
		hits = append(hits, VerseResult{
			Book:      ref.Book,
			Chapter:   ref.Chapter,
			Verse:     ref.VerseStart,
			Text:      entry.Text,
			Reference: entry.Reference,
			Testament: bible.Testament(ref.Book),
		})
	}
	return hits
}

func buildResult(hits []VerseResult) *Result {
	result := &Result{
		Results:    hits,
		TotalCount: len(hits),
		BookCounts: make(map[string]int),
	}
	for _, hit := range hits {
		result.BookCounts[hit.Book]++
		if hit.Testament == "OT" {
			result.OTCount++
		} else {
			result.NTCount++
		}
	}
	return result
}

// Filter narrows the hit list by testament or book name. The counts
// always describe the unfiltered set; Filter never refetches.
func Filter(result *Result, filter string) *Result {
	normalized := strings.ToLower(strings.TrimSpace(filter))
	if result == nil || normalized == "" || normalized == "all" {
		return result
	}

	kept := make([]VerseResult, 0, len(result.Results))
	for _, hit := range result.Results {
		switch normalized {
		case "ot":
			if hit.Testament == "OT" {
				kept = append(kept, hit)
			}
		case "nt":
			if hit.Testament == "NT" {
				kept = append(kept, hit)
			}
		default:
			if strings.EqualFold(hit.Book, filter) {
				kept = append(kept, hit)
			}
		}
	}

	filtered := *result
	filtered.Results = kept
	return &filtered
}

// inspiringVerses feeds the verse-of-the-day pick.
var inspiringVerses = []string{
	"John 3:16",
	"Jeremiah 29:11",
	"Philippians 4:13",
	"Romans 8:28",
	"Proverbs 3:5-6",
	"Isaiah 41:10",
	"Psalm 23:1",
	"Matthew 11:28",
	"Joshua 1:9",
	"Psalm 46:1",
}

// VerseOfTheDay picks a curated verse deterministically by day of year
// and resolves it in the requested language.
func (a *Aggregator) VerseOfTheDay(ctx context.Context, translationID, lang string, now time.Time) (*bible.Chapter, string, error) {
	if a == nil || a.resolver == nil {
		return nil, "", fmt.Errorf("search aggregator is not initialized")
	}

	reference := inspiringVerses[now.YearDay()%len(inspiringVerses)]
	ref, err := bible.ParseReference(reference)
	if err != nil {
		return nil, "", fmt.Errorf("parse curated reference %q: %w", reference, err)
	}

	chapter, err := a.resolver.ResolveVerses(ctx, ref, translationID, lang)
	if err != nil {
		return nil, "", err
	}
	return chapter, reference, nil
}
