package openai

import (
	"context"
	"fmt"

	"github.com/kdduha/image-text-extractor/internal/config"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// Client talks to any OpenAI-compatible chat completions endpoint.
type Client struct {
	openaiClient openai.Client
	cfg          config.ModelConfig
}

func New(cfg config.ModelConfig, apiCfg config.OpenAIConfig, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(apiCfg.APIKey),
		option.WithBaseURL(apiCfg.BaseURL),
		option.WithMaxRetries(0),
	}
	return &Client{
		openaiClient: openai.NewClient(append(base, opts...)...),
		cfg:          cfg,
	}
}

func (c *Client) Name() string  { return config.ProviderOpenAI }
func (c *Client) Model() string { return c.cfg.ID }
func (c *Client) Close() error  { return nil }

func (c *Client) buildParams(prompt string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.cfg.ID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(c.cfg.MaxTokens)),
		Temperature:         openai.Float(c.cfg.Temperature),
	}
	if len(c.cfg.StopSequences) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: c.cfg.StopSequences,
		}
	}
	return params
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.openaiClient.Chat.Completions.New(ctx, c.buildParams(prompt))
	if err != nil {
		return "", fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
