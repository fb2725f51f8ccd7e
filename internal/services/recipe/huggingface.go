package recipe

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	apperrors "github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/httpclient"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"github.com/socialchef/pantry/internal/services/ai"
	"github.com/socialchef/pantry/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var ErrNoResponse = errors.New("no response from Hugging Face")

// HuggingFaceProvider implements Generator on the Hugging Face
// OpenAI-compatible chat-completion endpoint.
type HuggingFaceProvider struct {
	client      ChatClient
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewHuggingFaceProvider creates a provider issuing one chat completion per call.
// A zero timeout leaves the call bounded only by ctx.
func NewHuggingFaceProvider(client ChatClient, model string, maxTokens int, temperature float32, timeout time.Duration) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Generate sends the ingredient list to the model and returns its markdown answer.
func (p *HuggingFaceProvider) Generate(ctx context.Context, ingredients []string) (string, error) {
	ctx, span := telemetry.Tracer("pantry/recipe").Start(ctx, "recipe.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", string(ProviderHuggingFace)),
		attribute.String("model", p.model),
		attribute.Int("ingredients.count", len(ingredients)),
	)

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", string(ProviderHuggingFace))}
		metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	content, err := p.complete(httpclient.WithProvider(ctx, "HuggingFace"), ingredients)
	if err != nil {
		providerErr := ClassifyError(err, string(ProviderHuggingFace))
		metrics.ProviderErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", providerErr.Provider),
			attribute.String("reason", providerErr.Type),
		))
		span.RecordError(err)
		span.SetStatus(codes.Error, providerErr.Type)
		slog.ErrorContext(ctx, "HF Inference error",
			"error_type", providerErr.Type,
			"error", err.Error(),
			logger.WithTraceContext(ctx),
		)
		return "", apperrors.NewRecipeGenerationError("Failed to generate recipe", providerErr.Code(), err)
	}

	slog.InfoContext(ctx, "Recipe generated successfully", logger.WithTraceContext(ctx))
	return content, nil
}

func (p *HuggingFaceProvider) complete(ctx context.Context, ingredients []string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ai.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: ai.BuildUserPrompt(ingredients)},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrNoResponse
	}
	return content, nil
}
