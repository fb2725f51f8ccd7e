package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/socialchef/pantry/internal/errors"
)

// CredentialEnvVar is the environment variable holding the inference provider token.
const CredentialEnvVar = "VITE_HF_ACCESS_TOKEN"

var ErrMissingCredential = errors.New(CredentialEnvVar + " not set in environment or .env")

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	HFAccessToken string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string

	Port string

	Inference InferenceConfig
}

type InferenceConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		HFAccessToken:            os.Getenv(CredentialEnvVar),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pantry-relay"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	cfg.SetInferenceDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Inference InferenceConfig `yaml:"inference"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Inference.BaseURL != "" {
		c.Inference.BaseURL = yamlConfig.Inference.BaseURL
	}
	if yamlConfig.Inference.Model != "" {
		c.Inference.Model = yamlConfig.Inference.Model
	}
	if yamlConfig.Inference.MaxTokens > 0 {
		c.Inference.MaxTokens = yamlConfig.Inference.MaxTokens
	}
	if yamlConfig.Inference.Temperature > 0 {
		c.Inference.Temperature = yamlConfig.Inference.Temperature
	}
	if yamlConfig.Inference.Timeout > 0 {
		c.Inference.Timeout = yamlConfig.Inference.Timeout
	}

	return nil
}

func (c *Config) SetInferenceDefaults() {
	if c.Inference.BaseURL == "" {
		c.Inference.BaseURL = "https://router.huggingface.co/v1"
	}
	if c.Inference.Model == "" {
		c.Inference.Model = "Qwen/Qwen2.5-72B-Instruct"
	}
	if c.Inference.MaxTokens == 0 {
		c.Inference.MaxTokens = 1024
	}
	if c.Inference.Temperature == 0 {
		c.Inference.Temperature = 0.7
	}
	if c.Inference.Timeout == 0 {
		c.Inference.Timeout = 60 * time.Second
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2") into a map.
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HFAccessToken) == "" {
		return apperrors.NewConfigurationError("Missing inference credential", "MISSING_CREDENTIAL", ErrMissingCredential)
	}
	return nil
}
