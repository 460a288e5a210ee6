package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/manna/internal/bible"
	"horse.fit/manna/internal/provider"
)

type stubResolver struct {
	calls   []string
	resolve func(ref bible.Reference) (*bible.Chapter, error)
}

func (s *stubResolver) ResolveVerses(_ context.Context, ref bible.Reference, _, _ string) (*bible.Chapter, error) {
	s.calls = append(s.calls, ref.String())
	return s.resolve(ref)
}

func chapterWith(ref bible.Reference, texts ...string) *bible.Chapter {
	verses := make([]bible.Verse, 0, len(texts))
	for i, text := range texts {
		number := ref.VerseStart
		if number == 0 {
			number = 1
		}
		verses = append(verses, bible.Verse{Number: number + i, Text: text})
	}
	return &bible.Chapter{
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		Translation: "KJV",
		Verses:      verses,
		Source:      "bolls",
		Language:    "en",
	}
}

func TestSearchReferenceQueryDelegatesToResolver(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(ref bible.Reference) (*bible.Chapter, error) {
			return chapterWith(ref, "For God so loved the world"), nil
		},
	}
	a := NewAggregator(resolver, nil, "", zerolog.Nop())

	result, err := a.Search(context.Background(), "John 3:16", "KJV", "en", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resolver.calls) != 1 || resolver.calls[0] != "John 3:16" {
		t.Fatalf("unexpected resolver calls %v", resolver.calls)
	}
	if result.TotalCount != 1 || result.Results[0].Reference != "John 3:16" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.NTCount != 1 || result.OTCount != 0 {
		t.Fatalf("unexpected testament counts ot=%d nt=%d", result.OTCount, result.NTCount)
	}
}

func TestSearchKeywordScansTopicCandidates(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(ref bible.Reference) (*bible.Chapter, error) {
			if ref.Book == "1 Corinthians" {
				return chapterWith(ref, "Though I speak with tongues", "And now abideth faith, hope, love"), nil
			}
			return nil, errors.New("unavailable")
		},
	}
	a := NewAggregator(resolver, nil, "", zerolog.Nop())

	result, err := a.Search(context.Background(), "love", "KJV", "en", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalCount != 1 {
		t.Fatalf("expected 1 filtered hit, got %d", result.TotalCount)
	}
	if !strings.Contains(strings.ToLower(result.Results[0].Text), "love") {
		t.Fatalf("hit does not contain keyword: %q", result.Results[0].Text)
	}
	// The love topic has seven candidates; failures are skipped, not fatal.
	if len(resolver.calls) != 7 {
		t.Fatalf("expected 7 candidate fetches, got %d (%v)", len(resolver.calls), resolver.calls)
	}
}

func TestSearchStopsAtLimit(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(ref bible.Reference) (*bible.Chapter, error) {
			return chapterWith(ref, "love one", "love two", "love three"), nil
		},
	}
	a := NewAggregator(resolver, nil, "", zerolog.Nop())

	result, err := a.Search(context.Background(), "love", "KJV", "en", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalCount != 2 {
		t.Fatalf("expected limit of 2, got %d", result.TotalCount)
	}
	if len(resolver.calls) != 1 {
		t.Fatalf("limit reached, further candidates must not be fetched, got %d", len(resolver.calls))
	}
}

type stubRemote struct {
	configured bool
	results    []provider.SearchResult
	calls      int
}

func (s *stubRemote) Search(context.Context, string, string, int) ([]provider.SearchResult, error) {
	s.calls++
	return s.results, nil
}

func (s *stubRemote) Configured() bool { return s.configured }

func TestSearchFallsBackToRemoteOnZeroResults(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(bible.Reference) (*bible.Chapter, error) {
			return nil, errors.New("unavailable")
		},
	}
	remote := &stubRemote{
		configured: true,
		results: []provider.SearchResult{
			{Reference: "John 3:16", Text: "For God so loved the world"},
			{Reference: "Bogus 99:1", Text: "dropped"},
		},
	}
	a := NewAggregator(resolver, remote, "bible-id", zerolog.Nop())

	result, err := a.Search(context.Background(), "xylophone", "KJV", "en", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if remote.calls != 1 {
		t.Fatalf("expected one remote call, got %d", remote.calls)
	}
	if result.TotalCount != 1 || result.Results[0].Book != "John" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSearchRemoteSkippedWhenNotConfigured(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(bible.Reference) (*bible.Chapter, error) {
			return nil, errors.New("unavailable")
		},
	}
	remote := &stubRemote{configured: false}
	a := NewAggregator(resolver, remote, "bible-id", zerolog.Nop())

	result, err := a.Search(context.Background(), "xylophone", "KJV", "en", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if remote.calls != 0 {
		t.Fatal("unconfigured remote must not be queried")
	}
	if result.TotalCount != 0 {
		t.Fatalf("expected empty result, got %d", result.TotalCount)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	a := NewAggregator(&stubResolver{resolve: func(bible.Reference) (*bible.Chapter, error) {
		return nil, errors.New("unused")
	}}, nil, "", zerolog.Nop())

	if _, err := a.Search(context.Background(), "  ", "KJV", "en", 20); err == nil {
		t.Fatal("expected error for blank query")
	}
}

func TestFilterKeepsCountsUnchanged(t *testing.T) {
	t.Parallel()

	result := buildResult([]VerseResult{
		{Book: "Psalms", Chapter: 23, Verse: 1, Testament: "OT"},
		{Book: "John", Chapter: 3, Verse: 16, Testament: "NT"},
		{Book: "Romans", Chapter: 8, Verse: 28, Testament: "NT"},
	})

	filtered := Filter(result, "nt")
	if len(filtered.Results) != 2 {
		t.Fatalf("expected 2 NT hits, got %d", len(filtered.Results))
	}
	if filtered.TotalCount != 3 || filtered.OTCount != 1 || filtered.NTCount != 2 {
		t.Fatalf("counts must describe the unfiltered set: %+v", filtered)
	}
	if filtered.BookCounts["Psalms"] != 1 || filtered.BookCounts["John"] != 1 || filtered.BookCounts["Romans"] != 1 {
		t.Fatalf("unexpected per-book counts: %v", filtered.BookCounts)
	}

	byBook := Filter(result, "john")
	if len(byBook.Results) != 1 || byBook.Results[0].Book != "John" {
		t.Fatalf("unexpected book filter result %+v", byBook.Results)
	}

	if all := Filter(result, "all"); len(all.Results) != 3 {
		t.Fatalf("all filter must keep everything, got %d", len(all.Results))
	}
}

func TestVerseOfTheDayIsDateStable(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{
		resolve: func(ref bible.Reference) (*bible.Chapter, error) {
			return chapterWith(ref, "text"), nil
		},
	}
	a := NewAggregator(resolver, nil, "", zerolog.Nop())

	day := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	_, refA, err := a.VerseOfTheDay(context.Background(), "KJV", "en", day)
	if err != nil {
		t.Fatalf("votd: %v", err)
	}
	_, refB, err := a.VerseOfTheDay(context.Background(), "KJV", "en", day.Add(6*time.Hour))
	if err != nil {
		t.Fatalf("votd: %v", err)
	}
	if refA != refB {
		t.Fatalf("same day must pick same verse: %q vs %q", refA, refB)
	}

	_, refC, err := a.VerseOfTheDay(context.Background(), "KJV", "en", day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("votd: %v", err)
	}
	if refA == refC {
		t.Fatalf("consecutive days should rotate the pick, both %q", refA)
	}
}
