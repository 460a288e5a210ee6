// Package provider contains the upstream scripture content adapters.
// Each adapter normalizes one provider's wire format into bible.Chapter.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"horse.fit/manna/internal/bible"
)

var (
	// ErrEmptyChapter is returned when an upstream replied successfully
	// but carried no verses. Callers treat it like any other failure.
	ErrEmptyChapter = errors.New("provider returned no verses")

	// ErrMissingCredential is returned by adapters that need an API key
	// when none is configured.
	ErrMissingCredential = errors.New("provider credential not configured")
)

// ContentSource fetches one chapter from an upstream scripture provider.
// The code argument is the provider-specific translation identifier.
type ContentSource interface {
	FetchChapter(ctx context.Context, ref bible.Reference, code string) (*bible.Chapter, error)
	Name() string
}

// StatusError carries the upstream HTTP status for non-2xx replies.
type StatusError struct {
	Provider string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s upstream status %d", e.Provider, e.Status)
}

const defaultClientTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultClientTimeout}
}

// fetchBody issues a GET and returns the response body for 2xx replies.
// Non-2xx statuses become a StatusError so callers can distinguish
// upstream refusals from transport failures.
func fetchBody(ctx context.Context, client *http.Client, provider, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: provider, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", provider, err)
	}
	return body, nil
}
