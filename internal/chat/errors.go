package chat

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNoProvider means no completion provider has a key configured.
	ErrNoProvider = errors.New("no completion provider configured")

	// ErrRateLimited means every configured provider was rate limited
	// even after retries. Clients should back off and try again.
	ErrRateLimited = errors.New("completion providers are busy")

	// ErrMisconfigured means a provider rejected its credential.
	ErrMisconfigured = errors.New("completion provider rejected credentials")
)

// ProviderError is a non-2xx reply from a completion provider. The
// message keeps a slice of the upstream body for classification.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Provider, e.Status, e.Message)
}

// IsRateLimited reports whether the error is rate-limit shaped: a 429,
// or a body mentioning rate limits or quota exhaustion.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	if pe.Status == http.StatusTooManyRequests {
		return true
	}
	lowered := strings.ToLower(pe.Message)
	return strings.Contains(lowered, "rate limit") || strings.Contains(lowered, "quota")
}

// IsAuthFailure reports whether the error looks like a bad credential.
func IsAuthFailure(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	if pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden {
		return true
	}
	lowered := strings.ToLower(pe.Message)
	return strings.Contains(lowered, "api key") || strings.Contains(lowered, "unauthorized")
}
