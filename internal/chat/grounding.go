package chat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"horse.fit/manna/internal/bible"
)

const (
	// groundingTimeout bounds the whole grounding pre-step, not each
	// individual fetch.
	groundingTimeout = 3 * time.Second

	// maxGroundingRefs caps how many references from the user message
	// are fetched.
	maxGroundingRefs = 3
)

// VerseFetcher retrieves the authoritative text of one reference.
type VerseFetcher interface {
	FetchVerseText(ctx context.Context, reference string) (string, error)
}

// BibleAPIFetcher fetches KJV verse text from bible-api.com for
// grounding quoted scripture in chat answers.
type BibleAPIFetcher struct {
	baseURL string
	client  *http.Client
}

func NewBibleAPIFetcher(baseURL string) *BibleAPIFetcher {
	if baseURL == "" {
		baseURL = "https://bible-api.com"
	}
	return &BibleAPIFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: groundingTimeout},
	}
}

// FetchVerseText returns `Reference: "text"` for one reference.
func (f *BibleAPIFetcher) FetchVerseText(ctx context.Context, reference string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?translation=kjv", f.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build grounding request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send grounding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("grounding upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read grounding response: %w", err)
	}

	parsed := gjson.ParseBytes(body)
	text := strings.TrimSpace(parsed.Get("text").String())
	if text == "" {
		return "", fmt.Errorf("grounding response had no text")
	}
	canonical := parsed.Get("reference").String()
	if canonical == "" {
		canonical = reference
	}
	return fmt.Sprintf("%s: %q", canonical, text), nil
}

// groundingContext extracts verse references from the user query and
// fetches their authoritative KJV text under one shared deadline.
// Every failure is silent: grounding improves answers but never blocks
// them.
func groundingContext(ctx context.Context, fetcher VerseFetcher, query string) string {
	if fetcher == nil {
		return ""
	}
	references := bible.ExtractReferences(query)
	if len(references) == 0 {
		return ""
	}
	if len(references) > maxGroundingRefs {
		references = references[:maxGroundingRefs]
	}

	fetchCtx, cancel := context.WithTimeout(ctx, groundingTimeout)
	defer cancel()

	verses := make([]string, 0, len(references))
	for _, reference := range references {
		if fetchCtx.Err() != nil {
			break
		}
		text, err := fetcher.FetchVerseText(fetchCtx, reference)
		if err != nil {
			continue
		}
		verses = append(verses, text)
	}
	if len(verses) == 0 {
		return ""
	}

	return "\n\nACCURATE BIBLE TEXT (KJV from bible-api.com):\n" +
		strings.Join(verses, "\n") +
		"\n\nUse this exact text when quoting."
}
