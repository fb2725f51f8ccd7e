package recipe

import (
	"github.com/sashabaranov/go-openai"
	"github.com/socialchef/pantry/internal/config"
	"github.com/socialchef/pantry/internal/httpclient"
)

// NewGenerator creates the recipe generator described by cfg.
// The token never leaves the process; it is only sent to cfg.Inference.BaseURL.
func NewGenerator(cfg *config.Config) Generator {
	clientCfg := openai.DefaultConfig(cfg.HFAccessToken)
	clientCfg.BaseURL = cfg.Inference.BaseURL
	// The provider bounds each call with its own context deadline.
	clientCfg.HTTPClient = httpclient.NewInstrumentedClient(0)

	return NewHuggingFaceProvider(
		openai.NewClientWithConfig(clientCfg),
		cfg.Inference.Model,
		cfg.Inference.MaxTokens,
		cfg.Inference.Temperature,
		cfg.Inference.Timeout,
	)
}
