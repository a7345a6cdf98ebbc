package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/bytedance/sonic"
	"github.com/kdduha/image-text-extractor/internal/config"
)

const anthropicVersion = "bedrock-2023-05-31"

type invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Client struct {
	runtime invoker
	cfg     config.ModelConfig
}

// New loads the default AWS credential chain for the configured region.
// SDK retries are disabled so a failed call is reported as-is.
func New(ctx context.Context, cfg config.ModelConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithRuntime(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

func NewWithRuntime(runtime invoker, cfg config.ModelConfig) *Client {
	return &Client{runtime: runtime, cfg: cfg}
}

func (c *Client) Name() string  { return config.ProviderBedrock }
func (c *Client) Model() string { return c.cfg.ID }
func (c *Client) Close() error  { return nil }

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messagesRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	StopSequences    []string  `json:"stop_sequences"`
	Messages         []message `json:"messages"`
}

type messagesResponse struct {
	Content    []contentPart `json:"content"`
	StopReason string        `json:"stop_reason"`
}

func (c *Client) buildBody(prompt string) ([]byte, error) {
	stops := c.cfg.StopSequences
	if stops == nil {
		stops = []string{}
	}
	return sonic.Marshal(messagesRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.cfg.MaxTokens,
		Temperature:      c.cfg.Temperature,
		StopSequences:    stops,
		Messages: []message{{
			Role:    "user",
			Content: []contentPart{{Type: "text", Text: prompt}},
		}},
	})
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := c.buildBody(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to encode bedrock request: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke %s: %w", c.cfg.ID, err)
	}

	var resp messagesResponse
	if err := sonic.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode bedrock response: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("bedrock returned no content (stop_reason=%s)", resp.StopReason)
	}

	var text strings.Builder
	for _, part := range resp.Content {
		if part.Type == "text" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
