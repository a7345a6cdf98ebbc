package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kdduha/image-text-extractor/internal/logging"
	"github.com/kdduha/image-text-extractor/internal/metrics"
	"github.com/kdduha/image-text-extractor/internal/models"
	"go.uber.org/zap"
)

var (
	ErrMissingBase64     = errors.New("missing required key: " + models.InvocationEventKey)
	ErrInvalidBase64Type = errors.New("key " + models.InvocationEventKey + " must be a string")
)

// DownstreamError wraps any failure raised by the remote model call.
type DownstreamError struct {
	Err error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("model invocation failed: %s", e.Err)
}

func (e *DownstreamError) Unwrap() error { return e.Err }

type modelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
	Model() string
}

type ExtractService struct {
	logger *zap.Logger
	client modelClient
}

func NewExtractService(logger *zap.Logger, client modelClient) *ExtractService {
	return &ExtractService{
		logger: logger,
		client: client,
	}
}

// BuildPrompt joins the fixed instruction and the payload.
func BuildPrompt(payload string) string {
	return instruction + promptSeparator + payload
}

// Handle runs one invocation. It never returns nil and never panics on a
// failing model client.
func (e *ExtractService) Handle(ctx context.Context, event models.InvocationEvent) models.Result {
	start := time.Now()
	logger := e.logger.With(
		zap.String("request_id", logging.RequestID(ctx)),
		zap.String("provider", e.client.Name()),
		zap.String("model", e.client.Model()),
	)

	result := e.handle(ctx, logger, event)

	metrics.InvocationsTotal(result.Outcome())
	logger.Info("invocation finished",
		zap.String("outcome", result.Outcome()),
		zap.Int("status_code", result.Envelope().StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return result
}

func (e *ExtractService) handle(ctx context.Context, logger *zap.Logger, event models.InvocationEvent) models.Result {
	payload, err := payloadFromEvent(event)
	if err != nil {
		logger.Warn("invalid event", zap.Error(err))
		return models.ClientError{Message: err.Error()}
	}

	logger.Info("invocation started", zap.Int("payload_len", len(payload)))

	text, err := e.generate(ctx, BuildPrompt(payload))
	if err != nil {
		logger.Error("model call failed", zap.Error(err))
		return models.ServerError{Message: err.Error()}
	}
	return models.Success{Text: text}
}

func payloadFromEvent(event models.InvocationEvent) (string, error) {
	raw, ok := event[models.InvocationEventKey]
	if !ok || raw == nil {
		return "", ErrMissingBase64
	}
	payload, ok := raw.(string)
	if !ok {
		return "", ErrInvalidBase64Type
	}
	return payload, nil
}

func (e *ExtractService) generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &DownstreamError{Err: fmt.Errorf("panic: %v", r)}
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ModelCallDuration(e.client.Name(), status, time.Since(start))
	}()

	text, err = e.client.Generate(ctx, prompt)
	if err != nil {
		return "", &DownstreamError{Err: err}
	}
	return text, nil
}
