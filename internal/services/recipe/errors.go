package recipe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	apperrors "github.com/socialchef/pantry/internal/errors"
)

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	Type     string // "rate_limit", "credit_exhausted", "timeout", "server_error", "client_error", "unknown"
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// Code returns the AppError code reported for this class of failure.
func (e *ProviderError) Code() string {
	switch e.Type {
	case "rate_limit":
		return "PROVIDER_RATE_LIMITED"
	case "credit_exhausted":
		return "PROVIDER_CREDIT_EXHAUSTED"
	case "timeout":
		return "PROVIDER_TIMEOUT"
	case "server_error":
		return "PROVIDER_SERVER_ERROR"
	case "client_error":
		return "PROVIDER_CLIENT_ERROR"
	case "empty_response":
		return "PROVIDER_EMPTY_RESPONSE"
	default:
		return "PROVIDER_ERROR"
	}
}

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(t string) *ProviderError {
		return &ProviderError{Type: t, Message: msg, Provider: provider}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return classified("timeout")
	}
	if errors.Is(err, ErrNoResponse) {
		return classified("empty_response")
	}

	// Structured errors from the chat-completion client carry the HTTP status
	if status := statusFromError(err); status != 0 {
		switch {
		case status == http.StatusTooManyRequests:
			return classified("rate_limit")
		case status == http.StatusPaymentRequired:
			return classified("credit_exhausted")
		case status >= 500:
			return classified("server_error")
		case status >= 400:
			return classified("client_error")
		}
	}

	// Check for rate limit (429)
	if containsSubstring(msg, "status 429") ||
		containsSubstring(msg, "HTTP 429") ||
		containsSubstring(msg, "rate limit") ||
		containsSubstring(msg, "too many requests") {
		return classified("rate_limit")
	}

	// Check for credit exhaustion (402 or credit-related messages)
	if containsSubstring(msg, "status 402") ||
		containsSubstring(msg, "HTTP 402") ||
		containsSubstring(msg, "insufficient credit") ||
		containsSubstring(msg, "credit exhausted") ||
		containsSubstring(msg, "exceeded your monthly included credits") ||
		containsSubstring(msg, "billing") {
		return classified("credit_exhausted")
	}

	// Check for AppError with status code
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= 500 {
			return classified("server_error")
		}
		if appErr.StatusCode >= 400 {
			return classified("client_error")
		}
	}

	// Check for server errors (5xx) in message
	if containsSubstring(msg, "status 5") ||
		containsSubstring(msg, "HTTP 5") ||
		containsSubstring(msg, "server error") ||
		containsSubstring(msg, "internal error") {
		return classified("server_error")
	}

	// Check for client errors (4xx) in message
	if containsSubstring(msg, "status 4") ||
		containsSubstring(msg, "HTTP 4") ||
		containsSubstring(msg, "bad request") ||
		containsSubstring(msg, "unauthorized") ||
		containsSubstring(msg, "forbidden") {
		return classified("client_error")
	}

	return classified("unknown")
}

func statusFromError(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// containsSubstring checks if a string contains a substring (case-insensitive)
func containsSubstring(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
