package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
)

type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

// ModelConfig is fixed for the lifetime of the process and shared read-only
// by every invocation.
type ModelConfig struct {
	Provider      string   `env:"MODEL_PROVIDER" envDefault:"bedrock"`
	ID            string   `env:"MODEL_ID" envDefault:"anthropic.claude-3-5-sonnet-20240620-v1:0"`
	Region        string   `env:"MODEL_REGION" envDefault:"us-east-1"`
	MaxTokens     int      `env:"MODEL_MAX_TOKENS" envDefault:"4096"`
	Temperature   float64  `env:"MODEL_TEMPERATURE" envDefault:"0"`
	StopSequences []string `env:"MODEL_STOP_SEQUENCES" envSeparator:","`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Model.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (m ModelConfig) Validate() error {
	switch m.Provider {
	case ProviderBedrock, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported model provider {%s}", m.Provider)
	}
	if m.ID == "" {
		return fmt.Errorf("model id is empty")
	}
	if m.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", m.MaxTokens)
	}
	if m.Temperature < 0 {
		return fmt.Errorf("temperature must not be negative, got %v", m.Temperature)
	}
	return nil
}
