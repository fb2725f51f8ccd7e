package recipe

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderHuggingFace ProviderType = "huggingface"
)

// Generator turns an ingredient list into markdown recipe text.
type Generator interface {
	Generate(ctx context.Context, ingredients []string) (string, error)
}

// ChatClient is the subset of *openai.Client used for recipe generation.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
