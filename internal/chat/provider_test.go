package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"
)

func TestOpenAICompatibleStreamsDeltas(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.URL.Path; got != "/chat/completions" {
			t.Errorf("unexpected path %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !gjson.GetBytes(body, "stream").Bool() {
			t.Errorf("expected streaming request")
		}
		if got := gjson.GetBytes(body, "messages.0.role").String(); got != "system" {
			t.Errorf("expected system message first, got %q", got)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewGroq("test-key", server.URL, "")
	stream, err := provider.Complete(context.Background(), "be helpful", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	defer stream.Close()

	text, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(text) != "Hello world" {
		t.Fatalf("got %q, want %q", text, "Hello world")
	}
}

func TestAnthropicStreamsContentBlockDeltas(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("unexpected version header %q", got)
		}
		if got := r.URL.Path; got != "/v1/messages" {
			t.Errorf("unexpected path %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if got := gjson.GetBytes(body, "system").String(); got != "be helpful" {
			t.Errorf("expected top-level system field, got %q", got)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"message_start\"}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\"Grace\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\" and peace\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
	}))
	defer server.Close()

	provider := NewAnthropic("test-key", server.URL, "")
	stream, err := provider.Complete(context.Background(), "be helpful", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	defer stream.Close()

	text, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(text) != "Grace and peace" {
		t.Fatalf("got %q, want %q", text, "Grace and peace")
	}
}

func TestCompleteReturnsProviderErrorOnBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached for model"}}`)
	}))
	defer server.Close()

	provider := NewOpenAI("test-key", server.URL, "")
	_, err := provider.Complete(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatalf("expected error")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if pe.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", pe.Status)
	}
	if pe.Message != "Rate limit reached for model" {
		t.Fatalf("expected parsed error message, got %q", pe.Message)
	}
	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limit classification")
	}
}

func TestConfiguredRequiresKey(t *testing.T) {
	t.Parallel()

	if NewGroq("", "", "").Configured() {
		t.Fatalf("empty key should not be configured")
	}
	if !NewAnthropic("key", "", "").Configured() {
		t.Fatalf("non-empty key should be configured")
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		err         error
		rateLimited bool
		authFailure bool
	}{
		{"status 429", &ProviderError{Provider: "groq", Status: 429}, true, false},
		{"quota message", &ProviderError{Provider: "openai", Status: 400, Message: "You exceeded your current quota"}, true, false},
		{"status 401", &ProviderError{Provider: "openai", Status: 401}, false, true},
		{"api key message", &ProviderError{Provider: "anthropic", Status: 400, Message: "invalid API key provided"}, false, true},
		{"server error", &ProviderError{Provider: "groq", Status: 500, Message: "internal"}, false, false},
		{"plain error", errors.New("connection refused"), false, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRateLimited(tc.err); got != tc.rateLimited {
				t.Fatalf("IsRateLimited = %v, want %v", got, tc.rateLimited)
			}
			if got := IsAuthFailure(tc.err); got != tc.authFailure {
				t.Fatalf("IsAuthFailure = %v, want %v", got, tc.authFailure)
			}
		})
	}
}
