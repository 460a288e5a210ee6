package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horse.fit/manna/internal/bible"
)

func mustRef(t *testing.T, raw string) bible.Reference {
	t.Helper()
	ref, err := bible.ParseReference(raw)
	if err != nil {
		t.Fatalf("parse reference %q: %v", raw, err)
	}
	return ref
}

func TestBollsFetchChapter(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`[
			{"pk": 1, "verse": 1, "text": "For <i>God</i> so loved the world<br/>"},
			{"pk": 2, "verse": 2, "text": "  "}
		]`))
	}))
	defer server.Close()

	source := NewBolls(server.URL)
	chapter, err := source.FetchChapter(context.Background(), mustRef(t, "John 3"), "KJV")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}

	if requestedPath != "/get-chapter/KJV/43/3/" {
		t.Fatalf("unexpected path %q", requestedPath)
	}
	if len(chapter.Verses) != 1 {
		t.Fatalf("expected 1 verse after dropping blanks, got %d", len(chapter.Verses))
	}
	if chapter.Verses[0].Text != "For God so loved the world" {
		t.Fatalf("unexpected verse text %q", chapter.Verses[0].Text)
	}
	if chapter.Source != "bolls" {
		t.Fatalf("unexpected source %q", chapter.Source)
	}
}

func TestBollsUpstreamStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewBolls(server.URL).FetchChapter(context.Background(), mustRef(t, "John 3"), "KJV")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", statusErr.Status)
	}
}

func TestAPIBibleRequiresCredential(t *testing.T) {
	t.Parallel()

	source := NewAPIBible("", "")
	_, err := source.FetchChapter(context.Background(), mustRef(t, "John 3"), "some-bible-id")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestAPIBibleFetchChapterParsesBrackets(t *testing.T) {
	t.Parallel()

	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.Write([]byte(`{"data": {"content": "[1] In the beginning God created [2] And the earth was without form"}}`))
	}))
	defer server.Close()

	source := NewAPIBible(server.URL, "secret")
	chapter, err := source.FetchChapter(context.Background(), mustRef(t, "Genesis 1"), "06125adad2d5898a-01")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}

	if gotKey != "secret" {
		t.Fatalf("api-key header not sent, got %q", gotKey)
	}
	if len(chapter.Verses) != 2 {
		t.Fatalf("expected 2 verses, got %d", len(chapter.Verses))
	}
	if chapter.Verses[0].Number != 1 || chapter.Verses[0].Text != "In the beginning God created" {
		t.Fatalf("unexpected first verse %+v", chapter.Verses[0])
	}
}

func TestParseBracketedVersesDegenerateContent(t *testing.T) {
	t.Parallel()

	verses := parseBracketedVerses("<p>For God so loved the world</p>")
	if len(verses) != 1 {
		t.Fatalf("expected single fallback verse, got %d", len(verses))
	}
	if verses[0].Number != 1 || verses[0].Text != "For God so loved the world" {
		t.Fatalf("unexpected verse %+v", verses[0])
	}

	if got := parseBracketedVerses("  "); got != nil {
		t.Fatalf("expected nil for blank content, got %+v", got)
	}
}

func TestAPIBibleSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "love" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
		}
		w.Write([]byte(`{"data": {"verses": [
			{"reference": "John 3:16", "text": "<p>For God so loved the world</p>"},
			{"reference": "1 John 4:8", "text": "God is love"}
		]}}`))
	}))
	defer server.Close()

	results, err := NewAPIBible(server.URL, "secret").Search(context.Background(), "bible-id", "love", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "For God so loved the world" {
		t.Fatalf("tags not stripped: %q", results[0].Text)
	}
}

func TestGetBibleFetchChapter(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{
			"translation": "Reina Valera (1909)",
			"abbreviation": "valera",
			"lang": "es",
			"verses": [
				{"chapter": 3, "verse": 16, "text": "Porque de tal manera amó Dios al mundo"}
			]
		}`))
	}))
	defer server.Close()

	chapter, err := NewGetBible(server.URL).FetchChapter(context.Background(), mustRef(t, "John 3"), "valera")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}

	if requestedPath != "/valera/43/3.json" {
		t.Fatalf("unexpected path %q", requestedPath)
	}
	if chapter.TranslationName != "Reina Valera (1909)" {
		t.Fatalf("unexpected translation name %q", chapter.TranslationName)
	}
	if chapter.Language != "es" {
		t.Fatalf("unexpected language %q", chapter.Language)
	}
}

func TestGetBibleEmptyChapter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verses": []}`))
	}))
	defer server.Close()

	_, err := NewGetBible(server.URL).FetchChapter(context.Background(), mustRef(t, "John 3"), "kjv")
	if !errors.Is(err, ErrEmptyChapter) {
		t.Fatalf("expected ErrEmptyChapter, got %v", err)
	}
}

func TestBibleAPIFetchChapter(t *testing.T) {
	t.Parallel()

	var requested *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.Clone(context.Background())
		w.Write([]byte(`{"verses": [
			{"verse": 16, "text": "For God so loved the world\n"}
		]}`))
	}))
	defer server.Close()

	chapter, err := NewBibleAPI(server.URL).FetchChapter(context.Background(), mustRef(t, "John 3"), "web")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}

	if requested.URL.Query().Get("translation") != "web" {
		t.Fatalf("unexpected translation %q", requested.URL.Query().Get("translation"))
	}
	if chapter.Translation != "WEB" || chapter.TranslationName != "World English Bible" {
		t.Fatalf("unexpected translation metadata %q %q", chapter.Translation, chapter.TranslationName)
	}
	if chapter.Verses[0].Text != "For God so loved the world" {
		t.Fatalf("text not trimmed: %q", chapter.Verses[0].Text)
	}
}

func TestBibleAPISingleChapterBookExpansion(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{"verses": [{"verse": 1, "text": "Jude, a servant of Jesus Christ"}]}`))
	}))
	defer server.Close()

	_, err := NewBibleAPI(server.URL).FetchChapter(context.Background(), mustRef(t, "Jude 1"), "kjv")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}
	if requestedPath != "/Jude 1:1-25" {
		t.Fatalf("expected expanded single-chapter reference, got %q", requestedPath)
	}
}

func TestNormalizeTranslationCoercesUnknownToKJV(t *testing.T) {
	t.Parallel()

	if got := NormalizeTranslation("RV1960"); got != "kjv" {
		t.Fatalf("expected kjv, got %q", got)
	}
	if got := NormalizeTranslation("YLT"); got != "ylt" {
		t.Fatalf("expected ylt, got %q", got)
	}
}

func TestBibleOrgFetchChapter(t *testing.T) {
	t.Parallel()

	var requestedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"bookname": "1 John", "chapter": "4", "verse": "7", "text": "Dear friends, let us love one another"}
		]`))
	}))
	defer server.Close()

	chapter, err := NewBibleOrg(server.URL).FetchChapter(context.Background(), mustRef(t, "1 John 4"), "")
	if err != nil {
		t.Fatalf("fetch chapter: %v", err)
	}

	if requestedQuery != "passage=1+john+4&type=json" {
		t.Fatalf("unexpected query %q", requestedQuery)
	}
	if chapter.Translation != "NET" {
		t.Fatalf("unexpected translation %q", chapter.Translation)
	}
	if chapter.Verses[0].Number != 7 {
		t.Fatalf("string verse number not parsed, got %d", chapter.Verses[0].Number)
	}
}
