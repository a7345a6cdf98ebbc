package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	pb "cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/kdduha/image-text-extractor/internal/config"
	"google.golang.org/api/option"
)

type Client struct {
	gc  *gl.GenerativeClient
	cfg config.ModelConfig
}

// New builds a REST client for the Generative Language API. The default
// GenerateContent call options (503 retry with backoff, 600s timeout) are
// cleared so every Generate is a single attempt bounded only by ctx.
func New(ctx context.Context, cfg config.ModelConfig, apiCfg config.GeminiConfig, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiCfg.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	gc, err := gl.NewGenerativeRESTClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiCfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	gc.CallOptions.GenerateContent = nil

	return &Client{gc: gc, cfg: cfg}, nil
}

func (c *Client) Name() string  { return config.ProviderGemini }
func (c *Client) Model() string { return c.cfg.ID }

func (c *Client) Close() error {
	return c.gc.Close()
}

func modelName(id string) string {
	if strings.Contains(id, "/") {
		return id
	}
	return "models/" + id
}

func (c *Client) buildRequest(prompt string) *pb.GenerateContentRequest {
	maxTokens := int32(c.cfg.MaxTokens)
	temperature := float32(c.cfg.Temperature)
	return &pb.GenerateContentRequest{
		Model: modelName(c.cfg.ID),
		Contents: []*pb.Content{{
			Role:  "user",
			Parts: []*pb.Part{{Data: &pb.Part_Text{Text: prompt}}},
		}},
		GenerationConfig: &pb.GenerationConfig{
			MaxOutputTokens: &maxTokens,
			Temperature:     &temperature,
			StopSequences:   c.cfg.StopSequences,
		},
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.gc.GenerateContent(ctx, c.buildRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	txt, ok := firstText(resp)
	if !ok {
		return "", errors.New("gemini returned no candidates")
	}
	return txt, nil
}

// firstText returns the text of the first candidate that carries content.
// ok is false when the response holds no such candidate.
func firstText(resp *pb.GenerateContentResponse) (string, bool) {
	for _, cand := range resp.GetCandidates() {
		if cand.GetContent() == nil {
			continue
		}
		var b strings.Builder
		for _, p := range cand.GetContent().GetParts() {
			b.WriteString(p.GetText())
		}
		return b.String(), true
	}
	return "", false
}
