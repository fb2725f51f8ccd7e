// Package integration exercises the relay end to end: the client helper talks
// to the real router, which calls a fake Hugging Face router over HTTP.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/socialchef/pantry/internal/api"
	"github.com/socialchef/pantry/internal/config"
	"github.com/socialchef/pantry/internal/recipeclient"
	"github.com/socialchef/pantry/internal/services/recipe"
)

const testToken = "hf_integration_token"

// fakeInference stands in for the OpenAI-compatible inference router.
type fakeInference struct {
	mu       sync.Mutex
	requests []openai.ChatCompletionRequest
	tokens   []string

	status  int
	content string
	delay   time.Duration
}

func (f *fakeInference) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))
	status, content, delay := f.status, f.content, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "upstream failure", "type": "server_error"},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: openai.FinishReasonStop,
		}},
	})
}

func (f *fakeInference) lastRequest(t *testing.T) openai.ChatCompletionRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "inference router was never called")
	return f.requests[len(f.requests)-1]
}

func (f *fakeInference) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type stack struct {
	inference *fakeInference
	relay     *httptest.Server
	client    *recipeclient.Client
}

// newStack starts a fake inference router and a relay wired to it.
func newStack(t *testing.T, inference *fakeInference, timeout time.Duration) *stack {
	t.Helper()

	upstream := httptest.NewServer(inference)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		ServiceName:   "pantry-relay-test",
		HFAccessToken: testToken,
		Port:          "0",
	}
	cfg.SetInferenceDefaults()
	cfg.Inference.BaseURL = upstream.URL + "/v1"
	if timeout > 0 {
		cfg.Inference.Timeout = timeout
	}

	srv := api.NewServer(recipe.NewGenerator(cfg))
	relay := httptest.NewServer(api.NewRouter(srv, cfg.ServiceName))
	t.Cleanup(relay.Close)

	return &stack{
		inference: inference,
		relay:     relay,
		client:    recipeclient.NewClient(relay.URL, 10*time.Second),
	}
}
