package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubFetcher struct {
	calls []string
	fetch func(reference string) (string, error)
}

func (s *stubFetcher) FetchVerseText(_ context.Context, reference string) (string, error) {
	s.calls = append(s.calls, reference)
	if s.fetch != nil {
		return s.fetch(reference)
	}
	return fmt.Sprintf("%s: %q", reference, "stub text"), nil
}

func TestGroundingContextFetchesExtractedReferences(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	got := groundingContext(context.Background(), fetcher, "What does John 3:16 mean compared to Romans 8:28?")

	if len(fetcher.calls) != 2 {
		t.Fatalf("expected 2 fetches, got %v", fetcher.calls)
	}
	if !strings.Contains(got, "ACCURATE BIBLE TEXT") {
		t.Fatalf("expected grounding header, got %q", got)
	}
	if !strings.Contains(got, "John 3:16") || !strings.Contains(got, "Romans 8:28") {
		t.Fatalf("expected both references in context, got %q", got)
	}
}

func TestGroundingContextCapsReferences(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	groundingContext(context.Background(), fetcher, "John 1:1, John 2:1, John 3:1, John 4:1 and John 5:1")

	if len(fetcher.calls) != maxGroundingRefs {
		t.Fatalf("expected %d fetches, got %d", maxGroundingRefs, len(fetcher.calls))
	}
}

func TestGroundingContextSwallowsFetchFailures(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(reference string) (string, error) {
		if reference == "John 3:16" {
			return "", errors.New("upstream down")
		}
		return fmt.Sprintf("%s: %q", reference, "ok"), nil
	}}
	got := groundingContext(context.Background(), fetcher, "John 3:16 and Psalm 23:1")

	if strings.Contains(got, "John 3:16") {
		t.Fatalf("failed reference should be omitted, got %q", got)
	}
	if !strings.Contains(got, "Psalm 23:1") {
		t.Fatalf("surviving reference should be present, got %q", got)
	}
}

func TestGroundingContextEmptyWhenNothingResolves(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (string, error) {
		return "", errors.New("upstream down")
	}}
	if got := groundingContext(context.Background(), fetcher, "John 3:16"); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestGroundingContextNoReferences(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	if got := groundingContext(context.Background(), fetcher, "how do I pray?"); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
	if len(fetcher.calls) != 0 {
		t.Fatalf("expected no fetches, got %v", fetcher.calls)
	}
}

func TestBibleAPIFetcherFormatsVerse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("translation"); got != "kjv" {
			t.Errorf("expected kjv translation, got %q", got)
		}
		fmt.Fprint(w, `{"reference":"John 3:16","text":"For God so loved the world...\n"}`)
	}))
	defer server.Close()

	fetcher := NewBibleAPIFetcher(server.URL)
	got, err := fetcher.FetchVerseText(context.Background(), "John 3:16")
	if err != nil {
		t.Fatalf("FetchVerseText: %v", err)
	}
	want := `John 3:16: "For God so loved the world..."`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBibleAPIFetcherRejectsEmptyText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"reference":"John 3:16"}`)
	}))
	defer server.Close()

	fetcher := NewBibleAPIFetcher(server.URL)
	if _, err := fetcher.FetchVerseText(context.Background(), "John 3:16"); err == nil {
		t.Fatalf("expected error for missing text")
	}
}
