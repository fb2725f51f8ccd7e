// Package recipeclient calls the relay's recipe route on behalf of a caller
// and unwraps the JSON envelope into plain recipe text.
package recipeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/socialchef/pantry/internal/httpclient"
)

// RecipePath is the relay route serving recipe requests.
const RecipePath = "/api/recipe"

const fallbackMessage = "Failed to get recipe"

// RequestError is returned when the relay answers without a recipe.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the relay at baseURL (e.g. http://localhost:3000).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.NewInstrumentedClient(timeout),
	}
}

type recipeRequest struct {
	IngredientsArr []string `json:"ingredientsArr"`
}

type envelope struct {
	Content string `json:"content"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// GetRecipe posts the ingredient list to the relay and returns the recipe text.
// Every failure is logged and returned; callers never receive an empty
// recipe with a nil error.
func (c *Client) GetRecipe(ctx context.Context, ingredients []string) (string, error) {
	content, err := c.getRecipe(ctx, ingredients)
	if err != nil {
		slog.ErrorContext(ctx, "Recipe request failed", "error", err)
		return "", err
	}
	return content, nil
}

func (c *Client) getRecipe(ctx context.Context, ingredients []string) (string, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	body, err := json.Marshal(recipeRequest{IngredientsArr: ingredients})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "PantryRelay"), http.MethodPost, c.baseURL+RecipePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", &RequestError{StatusCode: resp.StatusCode, Message: fallbackMessage}
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fallbackMessage
		}
		return "", &RequestError{StatusCode: resp.StatusCode, Message: msg}
	}

	return env.Content, nil
}

// IsRequestError reports whether err came from a relay response rather than transport.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
