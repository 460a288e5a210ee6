package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/manna/internal/chat"
)

//go:embed chat_request.schema.json
var chatRequestSchemaJSON string

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
	Lang     string         `json:"lang,omitempty"`
}

var (
	chatSchemaOnce sync.Once
	chatSchema     *jsonschema.Schema
	chatSchemaErr  error
)

func loadChatSchema() (*jsonschema.Schema, error) {
	chatSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("chat_request.schema.json", strings.NewReader(chatRequestSchemaJSON)); err != nil {
			chatSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("chat_request.schema.json")
		if err != nil {
			chatSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		chatSchema = schema
	})

	if chatSchemaErr != nil {
		return nil, chatSchemaErr
	}
	if chatSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return chatSchema, nil
}

func validateChatRequest(payload []byte) (*chatRequest, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("decode request JSON: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("request contains trailing content")
	}

	schema, err := loadChatSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var req chatRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return &req, nil
}

func (s *Server) handleChat(c echo.Context) error {
	if s.chat == nil {
		return fail(c, http.StatusServiceUnavailable, "Chat is not available", nil)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return failValidation(c, map[string]string{"body": "could not read request body"})
	}

	req, err := validateChatRequest(body)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	stream, providerName, err := s.chat.Complete(c.Request().Context(), req.Messages, req.Lang)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrRateLimited):
			return fail(c, http.StatusTooManyRequests, "All providers are busy, please retry shortly", nil)
		case errors.Is(err, chat.ErrNoProvider), errors.Is(err, chat.ErrMisconfigured):
			return fail(c, http.StatusServiceUnavailable, "Chat is not available", nil)
		default:
			s.logger.Error().Err(err).Msg("chat completion failed")
			return internalError(c, "Chat completion failed")
		}
	}
	defer stream.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
	resp.Header().Set("X-Chat-Provider", providerName)
	resp.WriteHeader(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, writeErr := resp.Write(buf[:n]); writeErr != nil {
				return nil
			}
			resp.Flush()
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				s.logger.Warn().Err(readErr).Str("provider", providerName).Msg("chat stream interrupted")
			}
			return nil
		}
	}
}
