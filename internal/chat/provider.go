package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer streams a completion as plain-text chunks. Complete
// returns once the upstream has accepted the request and started the
// stream; the reader yields deltas until EOF.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (io.ReadCloser, error)
	Name() string
	Configured() bool
}

const (
	DefaultGroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultAnthropicBaseURL = "https://api.anthropic.com"

	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-haiku-20240307"

	completionTemperature = 0.75
	completionMaxTokens   = 4000
)

// pipeSSE turns a server-sent-event body into a plain-text stream.
// Each data payload goes through extract and non-empty deltas are
// written to the pipe.
func pipeSSE(body io.ReadCloser, extract func(payload string) string) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		defer body.Close()
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" || payload == "[DONE]" {
				continue
			}
			delta := extract(payload)
			if delta == "" {
				continue
			}
			if _, err := pw.Write([]byte(delta)); err != nil {
				return
			}
		}
		pw.CloseWithError(scanner.Err())
	}()
	return pr
}

// OpenAICompatible streams chat completions from any OpenAI-style
// endpoint. Groq and OpenAI itself both speak this protocol.
type OpenAICompatible struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGroq(apiKey, baseURL, model string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if model == "" {
		model = DefaultGroqModel
	}
	return &OpenAICompatible{name: "groq", baseURL: baseURL, apiKey: apiKey, model: model, client: &http.Client{}}
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAICompatible{name: "openai", baseURL: baseURL, apiKey: apiKey, model: model, client: &http.Client{}}
}

func (p *OpenAICompatible) Name() string { return p.name }

func (p *OpenAICompatible) Configured() bool { return strings.TrimSpace(p.apiKey) != "" }

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

func (p *OpenAICompatible) Complete(ctx context.Context, system string, messages []Message) (io.ReadCloser, error) {
	payload := openAIRequest{
		Model:       p.model,
		Messages:    append([]Message{{Role: "system", Content: system}}, messages...),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Stream:      true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s request: %w", p.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readProviderError(p.name, resp)
	}

	return pipeSSE(resp.Body, func(payload string) string {
		return gjson.Get(payload, "choices.0.delta.content").String()
	}), nil
}

// Anthropic streams completions from the Anthropic messages API.
type Anthropic struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewAnthropic(apiKey, baseURL, model string) *Anthropic {
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{baseURL: baseURL, apiKey: apiKey, model: model, client: &http.Client{}}
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) Configured() bool { return strings.TrimSpace(p.apiKey) != "" }

type anthropicRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

func (p *Anthropic) Complete(ctx context.Context, system string, messages []Message) (io.ReadCloser, error) {
	payload := anthropicRequest{
		Model:       p.model,
		System:      system,
		Messages:    messages,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Stream:      true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send anthropic request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readProviderError("anthropic", resp)
	}

	return pipeSSE(resp.Body, func(payload string) string {
		if gjson.Get(payload, "type").String() != "content_block_delta" {
			return ""
		}
		return gjson.Get(payload, "delta.text").String()
	}), nil
}

func readProviderError(name string, resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &ProviderError{Provider: name, Status: resp.StatusCode, Message: message}
}
