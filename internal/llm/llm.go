// Package llm builds the remote model client selected by configuration. The
// client is created once per process and is safe for concurrent use.
package llm

import (
	"context"
	"fmt"

	"github.com/kdduha/image-text-extractor/internal/config"
	"github.com/kdduha/image-text-extractor/internal/llm/bedrock"
	"github.com/kdduha/image-text-extractor/internal/llm/gemini"
	"github.com/kdduha/image-text-extractor/internal/llm/openai"
)

type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
	Model() string
	Close() error
}

func New(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.Model.Provider {
	case config.ProviderBedrock:
		c, err := bedrock.New(ctx, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI:
		return openai.New(cfg.Model, cfg.OpenAI), nil
	case config.ProviderGemini:
		c, err := gemini.New(ctx, cfg.Model, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported model provider {%s}", cfg.Model.Provider)
	}
}
